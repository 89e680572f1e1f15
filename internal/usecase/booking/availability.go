package booking

import (
	"context"
	"time"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
	"github.com/AgendaCitasCO/cita-scheduler/internal/models"
	"github.com/AgendaCitasCO/cita-scheduler/internal/schedule"
)

// ======================================================
// Planning / read-side use cases
// ======================================================

type PlanDays struct {
	deps Deps
}

func NewPlanDays(deps Deps) *PlanDays {
	return &PlanDays{deps: deps}
}

type PlanDaysInput struct {
	Start       string // "2006-01-02"; empty means today
	HorizonDays int
	IgnoreID    string
}

type PlanDaysOutput struct {
	Days         []schedule.DayDescriptor `json:"days"`
	DefaultIndex int                      `json:"default_index"`
}

func (uc *PlanDays) Execute(ctx context.Context, in PlanDaysInput) (*PlanDaysOutput, error) {
	d := uc.deps

	start := d.now()
	if in.Start != "" {
		parsed, err := time.ParseInLocation("2006-01-02", in.Start, d.Grid.Loc)
		if err != nil {
			return nil, apperr.Validation("start", "invalid date")
		}
		start = parsed
	}

	snap, err := d.Ledger.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	days, defaultIndex, err := d.planner().Plan(ctx, start, snap, in.HorizonDays, in.IgnoreID)
	if err != nil {
		return nil, err
	}
	return &PlanDaysOutput{Days: days, DefaultIndex: defaultIndex}, nil
}

type ListSlots struct {
	deps Deps
}

func NewListSlots(deps Deps) *ListSlots {
	return &ListSlots{deps: deps}
}

func (uc *ListSlots) Execute(ctx context.Context, date string, ignoreID string) ([]schedule.Slot, error) {
	d := uc.deps

	day, err := time.ParseInLocation("2006-01-02", date, d.Grid.Loc)
	if err != nil {
		return nil, apperr.Validation("date", "invalid date")
	}

	snap, err := d.Ledger.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return d.index().SlotChoices(snap, day, ignoreID), nil
}

type ListByEmail struct {
	deps Deps
}

func NewListByEmail(deps Deps) *ListByEmail {
	return &ListByEmail{deps: deps}
}

// Execute returns the caller's active appointments.
func (uc *ListByEmail) Execute(ctx context.Context, email string) ([]models.Appointment, error) {
	if email == "" {
		return nil, apperr.Validation("email", "required")
	}

	snap, err := uc.deps.Ledger.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	var active []models.Appointment
	for _, ap := range snap.FilterByEmail(email) {
		if ap.IsActive() {
			active = append(active, ap)
		}
	}
	return active, nil
}
