package ledger

import (
	"context"

	"gorm.io/gorm"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
	"github.com/AgendaCitasCO/cita-scheduler/internal/models"
	"github.com/AgendaCitasCO/cita-scheduler/internal/schedule"
)

// ======================================================
// Postgres ledger
// ======================================================

// LedgerRow mirrors the sheet columns one to one. The auto-increment Seq
// preserves storage order so snapshot positions stay stable, matching the
// sheet's row addressing.
type LedgerRow struct {
	Seq uint `gorm:"primaryKey;autoIncrement"`

	AppointmentID string `gorm:"size:64;index"`
	Name          string `gorm:"size:120"`
	Email         string `gorm:"size:254"`
	Phone         string `gorm:"size:30"`
	Document      string `gorm:"size:20"`
	Birthdate     string `gorm:"size:10"`

	StartTimeISO string `gorm:"size:40;index"`
	LocalDisplay string `gorm:"size:60"`

	Status          string `gorm:"size:20"`
	CalendarEventID string `gorm:"size:128"`
	CreatedAtISO    string `gorm:"size:40"`
	Notes           string `gorm:"size:300"`
}

func (LedgerRow) TableName() string {
	return "appointment_rows"
}

type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) FetchAll(ctx context.Context) (schedule.Snapshot, error) {
	var rows []LedgerRow
	if err := l.db.WithContext(ctx).Order("seq asc").Find(&rows).Error; err != nil {
		return nil, apperr.External("ledger", err)
	}

	snap := make(schedule.Snapshot, 0, len(rows))
	for _, row := range rows {
		snap = append(snap, toAppointment(row))
	}
	return snap, nil
}

func (l *GormLedger) Append(ctx context.Context, ap models.Appointment) error {
	row := toRow(ap)
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return apperr.External("ledger", err)
	}
	return nil
}

func (l *GormLedger) UpdateAt(ctx context.Context, position int, ap models.Appointment) error {
	var row LedgerRow
	if err := l.db.WithContext(ctx).
		Order("seq asc").
		Offset(position).
		Limit(1).
		Find(&row).Error; err != nil {
		return apperr.External("ledger", err)
	}
	if row.Seq == 0 {
		return apperr.External("ledger", gorm.ErrRecordNotFound)
	}

	updated := toRow(ap)
	updated.Seq = row.Seq
	if err := l.db.WithContext(ctx).Save(&updated).Error; err != nil {
		return apperr.External("ledger", err)
	}
	return nil
}

func toRow(ap models.Appointment) LedgerRow {
	return LedgerRow{
		AppointmentID:   ap.ID,
		Name:            ap.Name,
		Email:           ap.Email,
		Phone:           ap.Phone,
		Document:        ap.Document,
		Birthdate:       ap.Birthdate,
		StartTimeISO:    ap.StartRaw,
		LocalDisplay:    ap.LocalDisplay,
		Status:          string(ap.Status),
		CalendarEventID: ap.CalendarEventID,
		CreatedAtISO:    ap.CreatedAtISO,
		Notes:           ap.Notes,
	}
}

func toAppointment(row LedgerRow) models.Appointment {
	return models.Appointment{
		ID:              row.AppointmentID,
		Name:            row.Name,
		Email:           row.Email,
		Phone:           row.Phone,
		Document:        row.Document,
		Birthdate:       row.Birthdate,
		StartRaw:        row.StartTimeISO,
		LocalDisplay:    row.LocalDisplay,
		Status:          models.Status(row.Status),
		CalendarEventID: row.CalendarEventID,
		CreatedAtISO:    row.CreatedAtISO,
		Notes:           row.Notes,
	}
}
