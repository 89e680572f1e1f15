package schedule

import (
	"context"
	"time"

	"github.com/AgendaCitasCO/cita-scheduler/internal/models"
)

// Ports to the external collaborators. The lifecycle only sequences calls;
// storage-offset translation (header-row skew and the like) belongs to the
// implementations.

type Ledger interface {
	// FetchAll returns the decoded rows in storage order.
	FetchAll(ctx context.Context) (Snapshot, error)

	Append(ctx context.Context, ap models.Appointment) error

	// UpdateAt overwrites the row at the given snapshot position.
	UpdateAt(ctx context.Context, position int, ap models.Appointment) error
}

type Calendar interface {
	CreateEvent(ctx context.Context, summary string, start time.Time, durationMinutes int, attendeeEmail string) (string, error)
	UpdateEvent(ctx context.Context, eventID string, start time.Time, durationMinutes int, attendeeEmail string) error
	DeleteEvent(ctx context.Context, eventID string) error
}

// Notifier failures are non-fatal to every lifecycle operation.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// HolidayProvider is consulted fresh on every planning call; results are
// never cached across calls.
type HolidayProvider interface {
	// HolidaysFor returns the holiday dates keyed "2006-01-02".
	HolidaysFor(ctx context.Context, jurisdiction string, years []int) (map[string]struct{}, error)
}
