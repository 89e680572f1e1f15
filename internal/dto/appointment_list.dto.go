package dto

import "github.com/AgendaCitasCO/cita-scheduler/internal/models"

type AppointmentListDTO struct {
	ID           string `json:"id"`
	StartTimeISO string `json:"start_time_iso"`
	LocalDisplay string `json:"local_display"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:           ap.ID,
		StartTimeISO: ap.StartRaw,
		LocalDisplay: ap.LocalDisplay,
		Status:       string(ap.Status),
		Notes:        ap.Notes,
	}
}
