package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgendaCitasCO/cita-scheduler/internal/dto"
	"github.com/AgendaCitasCO/cita-scheduler/internal/httperr"
	"github.com/AgendaCitasCO/cita-scheduler/internal/httpresp"
	"github.com/AgendaCitasCO/cita-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC       *booking.Book
	rescheduleUC *booking.Reschedule
	cancelUC     *booking.Cancel
	listUC       *booking.ListByEmail
}

func NewAppointmentHandler(
	bookUC *booking.Book,
	rescheduleUC *booking.Reschedule,
	cancelUC *booking.Cancel,
	listUC *booking.ListByEmail,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:       bookUC,
		rescheduleUC: rescheduleUC,
		cancelUC:     cancelUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Document  string `json:"document"`
	Birthdate string `json:"birthdate"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

type RescheduleRequest struct {
	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), booking.BookInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Document:  req.Document,
		Birthdate: req.Birthdate,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), booking.RescheduleInput{
		ID:    c.Param("id"),
		Date:  req.Date,
		Time:  req.Time,
		Notes: req.Notes,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), booking.CancelInput{
		ID:     c.Param("id"),
		Reason: req.Reason,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST BY EMAIL
// ======================================================

func (h *AppointmentHandler) ListByEmail(c *gin.Context) {
	items, err := h.listUC.Execute(c.Request.Context(), c.Query("email"))
	if err != nil {
		httperr.From(c, err)
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(items))
	for _, ap := range items {
		out = append(out, dto.FromAppointment(ap))
	}
	httpresp.List(c, out)
}
