package booking

import (
	"context"
	"fmt"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
	"github.com/AgendaCitasCO/cita-scheduler/internal/audit"
	"github.com/AgendaCitasCO/cita-scheduler/internal/models"
	"github.com/AgendaCitasCO/cita-scheduler/internal/schedule"
	"github.com/AgendaCitasCO/cita-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RescheduleInput struct {
	ID string

	Date string // "2006-01-02"
	Time string // "15:04"

	// Notes replaces the stored notes when non-empty; empty preserves them.
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type Reschedule struct {
	deps Deps
}

func NewReschedule(deps Deps) *Reschedule {
	return &Reschedule{deps: deps}
}

// Execute moves an active appointment to a new slot, keeping id, contact
// fields and created_at. The appointment's current slot is excluded from its
// own conflict check. The ledger row is overwritten in place; a calendar
// update failure aborts before the overwrite, a ledger failure after the
// calendar update is surfaced without rollback.
func (uc *Reschedule) Execute(ctx context.Context, in RescheduleInput) (*models.Appointment, error) {
	d := uc.deps

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

	target, pos := snap.FindByID(in.ID)
	if target == nil {
		return nil, apperr.Validation("id", "appointment not found")
	}
	if !target.IsActive() {
		return nil, apperr.Conflict("invalid_state")
	}

	if err := d.Rules.Validate(validators.Contact{
		Name:      target.Name,
		Email:     target.Email,
		Phone:     target.Phone,
		Document:  target.Document,
		Birthdate: target.Birthdate,
	}); err != nil {
		return nil, err
	}

	startISO := models.EncodeISO(start)
	if schedule.HasConflict(snap, startISO, in.ID) {
		return nil, apperr.Conflict("slot already booked")
	}

	if target.CalendarEventID != "" {
		if err := d.Calendar.UpdateEvent(ctx, target.CalendarEventID, start, d.DurationMinutes, target.Email); err != nil {
			return nil, err
		}
	}

	updated := *target
	updated.StartRaw = startISO
	updated.LocalDisplay = models.FormatLocal(start)
	updated.Status = models.StatusActive
	if in.Notes != "" {
		updated.Notes = in.Notes
	}

	if err := d.Ledger.UpdateAt(ctx, pos, updated); err != nil {
		d.Log.Error().Err(err).
			Str("id", updated.ID).
			Msg("ledger overwrite failed after calendar update")
		return nil, err
	}

	body := fmt.Sprintf("Tu cita %s fue reprogramada a %s.", updated.ID, updated.LocalDisplay)
	d.notify(ctx, updated.Email, "Cita reprogramada", body)

	d.Audit.Dispatch(audit.Event{
		AppointmentID: updated.ID,
		Action:        "appointment_rescheduled",
		Entity:        "appointment",
		Metadata:      startISO,
	})

	return &updated, nil
}
