package booking

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/AgendaCitasCO/cita-scheduler/internal/audit"
	"github.com/AgendaCitasCO/cita-scheduler/internal/schedule"
	"github.com/AgendaCitasCO/cita-scheduler/internal/validators"
)

// ======================================================
// Shared dependencies
// ======================================================

// DateLocker serializes commits per date. Two interactions can otherwise
// both observe a slot as free and both commit it; see the redis and
// in-process implementations.
type DateLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type Deps struct {
	Ledger   schedule.Ledger
	Calendar schedule.Calendar
	Notifier schedule.Notifier
	Holidays schedule.HolidayProvider
	Locks    DateLocker

	Grid         schedule.Grid
	WeeklyOffDay time.Weekday
	Jurisdiction string

	Rules           validators.Rules
	DurationMinutes int

	Audit *audit.Dispatcher
	Log   zerolog.Logger

	// Now is injectable for tests.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now().In(d.Grid.Loc)
	}
	return time.Now().In(d.Grid.Loc)
}

func (d Deps) index() schedule.Index {
	return schedule.Index{Grid: d.Grid}
}

func (d Deps) planner() schedule.Planner {
	return schedule.Planner{
		Index:        d.index(),
		WeeklyOffDay: d.WeeklyOffDay,
		Jurisdiction: d.Jurisdiction,
		Holidays:     d.Holidays,
	}
}

// notify sends best-effort: failures are recorded and never fail the
// operation that triggered them.
func (d Deps) notify(ctx context.Context, to, subject, body string) {
	if to == "" {
		d.Log.Warn().Str("subject", subject).Msg("no recipient, notification skipped")
		return
	}
	if err := d.Notifier.Send(ctx, to, subject, body); err != nil {
		d.Log.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("notification failed")
	}
}

// ======================================================
// In-process date lock
// ======================================================

// MutexDateLocker is the single-instance DateLocker. Deployments with more
// than one replica must use the redis lock instead.
type MutexDateLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMutexDateLocker() *MutexDateLocker {
	return &MutexDateLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *MutexDateLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
