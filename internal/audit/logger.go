package audit

import (
	"gorm.io/gorm"

	"github.com/rs/zerolog"

	"github.com/AgendaCitasCO/cita-scheduler/internal/models"
)

// GormSink stores audit rows next to the postgres ledger.
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Log(ev Event) error {
	return s.db.Create(&models.AuditLog{
		AppointmentID: ev.AppointmentID,
		Action:        ev.Action,
		Entity:        ev.Entity,
		Metadata:      ev.Metadata,
	}).Error
}

// LogSink writes audit events to the structured log. Used when the sheets
// ledger runs without a database.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Log(ev Event) error {
	s.log.Info().
		Str("appointment_id", ev.AppointmentID).
		Str("action", ev.Action).
		Str("entity", ev.Entity).
		Str("metadata", ev.Metadata).
		Msg("audit")
	return nil
}
