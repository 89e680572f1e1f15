package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
	"github.com/AgendaCitasCO/cita-scheduler/internal/audit"
	"github.com/AgendaCitasCO/cita-scheduler/internal/models"
	"github.com/AgendaCitasCO/cita-scheduler/internal/schedule"
	"github.com/AgendaCitasCO/cita-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	Name      string
	Email     string
	Phone     string
	Document  string
	Birthdate string

	Date string // "2006-01-02"
	Time string // "15:04"

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	deps Deps
}

func NewBook(deps Deps) *Book {
	return &Book{deps: deps}
}

// Execute books a new appointment. All preconditions run before any side
// effect; effects run calendar -> ledger -> notifier and abort at the first
// calendar or ledger failure.
func (uc *Book) Execute(ctx context.Context, in BookInput) (*models.Appointment, error) {
	d := uc.deps

	if err := d.Rules.Validate(validators.Contact{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Document:  in.Document,
		Birthdate: in.Birthdate,
	}); err != nil {
		return nil, err
	}

	start, err := parseStart(in.Date, in.Time, d.Grid.Loc)
	if err != nil {
		return nil, err
	}
	if err := validateStart(d, start); err != nil {
		return nil, err
	}

	unlock, err := d.Locks.Lock(ctx, start.Format("2006-01-02"))
	if err != nil {
		return nil, apperr.External("ledger", err)
	}
	defer unlock()

	snap, err := d.Ledger.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	startISO := models.EncodeISO(start)
	if schedule.HasConflict(snap, startISO, "") {
		return nil, apperr.Conflict("slot already booked")
	}

	summary := "Cita"
	if in.Name != "" {
		summary = "Cita con " + in.Name
	}
	eventID, err := d.Calendar.CreateEvent(ctx, summary, start, d.DurationMinutes, in.Email)
	if err != nil {
		return nil, err
	}

	ap := models.Appointment{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Document:        in.Document,
		Birthdate:       in.Birthdate,
		StartRaw:        startISO,
		LocalDisplay:    models.FormatLocal(start),
		Status:          models.StatusActive,
		CalendarEventID: eventID,
		CreatedAtISO:    models.EncodeISO(d.now()),
		Notes:           in.Notes,
	}

	if err := d.Ledger.Append(ctx, ap); err != nil {
		// No compensation: the created event is orphaned. Documented
		// limitation, surfaced loudly instead of hidden.
		d.Log.Error().Err(err).
			Str("event_id", eventID).
			Str("start", startISO).
			Msg("ledger append failed after calendar create, event orphaned")
		return nil, err
	}

	body := fmt.Sprintf(
		"Hola %s, tu cita está agendada el %s. ID: %s\nMotivo: %s",
		in.Name, ap.LocalDisplay, ap.ID, in.Notes,
	)
	d.notify(ctx, ap.Email, "Confirmación de cita", body)

	d.Audit.Dispatch(audit.Event{
		AppointmentID: ap.ID,
		Action:        "appointment_created",
		Entity:        "appointment",
		Metadata:      startISO,
	})

	return &ap, nil
}

// ======================================================
// Shared precondition helpers
// ======================================================

func parseStart(date, hm string, loc *time.Location) (time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hm, loc)
	if err != nil {
		return time.Time{}, apperr.Validation("start", "invalid date or time")
	}
	return start, nil
}

func validateStart(d Deps, start time.Time) error {
	if !d.Grid.Aligned(start) {
		return apperr.Validation("start", "not aligned to the slot grid")
	}
	if start.Before(d.now()) {
		return apperr.Validation("start", "in the past")
	}
	if !d.Grid.WithinBusinessHours(start) {
		return apperr.Validation("start", "outside business hours")
	}
	return nil
}
