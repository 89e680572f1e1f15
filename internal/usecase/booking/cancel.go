package booking

import (
	"context"
	"fmt"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
	"github.com/AgendaCitasCO/cita-scheduler/internal/audit"
	"github.com/AgendaCitasCO/cita-scheduler/internal/models"
)

type CancelInput struct {
	ID     string
	Reason string
}

type Cancel struct {
	deps Deps
}

func NewCancel(deps Deps) *Cancel {
	return &Cancel{deps: deps}
}

// Execute cancels a located active appointment. Cancellation is always
// permitted: no time or conflict re-validation. The row is never deleted,
// only flipped to canceled with the reason in notes; the calendar event
// reference is left on the row for history.
func (uc *Cancel) Execute(ctx context.Context, in CancelInput) (*models.Appointment, error) {
	d := uc.deps

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

	if target.CalendarEventID != "" {
		if err := d.Calendar.DeleteEvent(ctx, target.CalendarEventID); err != nil {
			return nil, err
		}
	}

	canceled := *target
	canceled.Status = models.StatusCanceled
	canceled.Notes = in.Reason

	if err := d.Ledger.UpdateAt(ctx, pos, canceled); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Tu cita %s fue cancelada. Motivo: %s", canceled.ID, in.Reason)
	d.notify(ctx, canceled.Email, "Cita cancelada", body)

	d.Audit.Dispatch(audit.Event{
		AppointmentID: canceled.ID,
		Action:        "appointment_cancelled",
		Entity:        "appointment",
		Metadata:      in.Reason,
	})

	return &canceled, nil
}
