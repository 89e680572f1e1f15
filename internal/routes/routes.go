package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AgendaCitasCO/cita-scheduler/internal/config"
	"github.com/AgendaCitasCO/cita-scheduler/internal/handlers"
	"github.com/AgendaCitasCO/cita-scheduler/internal/middleware"
	"github.com/AgendaCitasCO/cita-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, deps booking.Deps, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// USE CASES
	// ======================================================
	bookUC := booking.NewBook(deps)
	rescheduleUC := booking.NewReschedule(deps)
	cancelUC := booking.NewCancel(deps)
	listUC := booking.NewListByEmail(deps)

	planDaysUC := booking.NewPlanDays(deps)
	listSlotsUC := booking.NewListSlots(deps)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		rescheduleUC,
		cancelUC,
		listUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(
		planDaysUC,
		listSlotsUC,
		cfg.HorizonDays,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/availability/days", availabilityHandler.Days)
		api.GET("/availability/slots", availabilityHandler.Slots)

		api.GET("/appointments", appointmentHandler.ListByEmail)
		api.POST("/appointments", appointmentHandler.Book)
		api.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
	}
}
