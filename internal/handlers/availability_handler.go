package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AgendaCitasCO/cita-scheduler/internal/httperr"
	"github.com/AgendaCitasCO/cita-scheduler/internal/httpresp"
	"github.com/AgendaCitasCO/cita-scheduler/internal/usecase/booking"
)

type AvailabilityHandler struct {
	planDaysUC  *booking.PlanDays
	listSlotsUC *booking.ListSlots

	defaultHorizonDays int
}

func NewAvailabilityHandler(
	planDaysUC *booking.PlanDays,
	listSlotsUC *booking.ListSlots,
	defaultHorizonDays int,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		planDaysUC:         planDaysUC,
		listSlotsUC:        listSlotsUC,
		defaultHorizonDays: defaultHorizonDays,
	}
}

// Days classifies each date of the horizon as open or blocked.
func (h *AvailabilityHandler) Days(c *gin.Context) {
	horizon := h.defaultHorizonDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httperr.BadRequest(c, "invalid_request", "Parámetro days inválido.")
			return
		}
		horizon = n
	}

	out, err := h.planDaysUC.Execute(c.Request.Context(), booking.PlanDaysInput{
		Start:       c.Query("start"),
		HorizonDays: horizon,
		IgnoreID:    c.Query("ignore_id"),
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.OK(c, out)
}

// Slots returns every grid slot of a date with its free/busy status.
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "invalid_request", "Falta el parámetro date.")
		return
	}

	slots, err := h.listSlotsUC.Execute(c.Request.Context(), date, c.Query("ignore_id"))
	if err != nil {
		httperr.From(c, err)
		return
	}

	httpresp.List(c, slots)
}
