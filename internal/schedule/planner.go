package schedule

import (
	"context"
	"time"
)

// ===============================
// Date planning
// ===============================

type BlockReason string

const (
	ReasonNone      BlockReason = ""
	ReasonWeeklyOff BlockReason = "weekly-off"
	ReasonHoliday   BlockReason = "holiday"
	ReasonFull      BlockReason = "full"
)

// DayDescriptor is derived, never persisted.
type DayDescriptor struct {
	Date    time.Time   `json:"date"`
	Blocked bool        `json:"blocked"`
	Reason  BlockReason `json:"reason,omitempty"`
}

type Planner struct {
	Index        Index
	WeeklyOffDay time.Weekday
	Jurisdiction string
	Holidays     HolidayProvider
}

// Plan classifies each date in [start, start+horizonDays] and selects the
// first open day as the default. When every day is blocked the default falls
// on the horizon's last index. Reason precedence: weekly-off, then holiday,
// then full.
func (p Planner) Plan(ctx context.Context, start time.Time, snap Snapshot, horizonDays int, ignoreID string) ([]DayDescriptor, int, error) {
	loc := p.Index.Grid.Loc
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	last := first.AddDate(0, 0, horizonDays)

	years := []int{first.Year()}
	if last.Year() != first.Year() {
		for y := first.Year() + 1; y <= last.Year(); y++ {
			years = append(years, y)
		}
	}

	holidays, err := p.Holidays.HolidaysFor(ctx, p.Jurisdiction, years)
	if err != nil {
		return nil, 0, err
	}

	days := make([]DayDescriptor, 0, horizonDays+1)
	defaultIndex := -1
	for d := 0; d <= horizonDays; d++ {
		date := first.AddDate(0, 0, d)

		reason := ReasonNone
		switch {
		case date.Weekday() == p.WeeklyOffDay:
			reason = ReasonWeeklyOff
		case hasHoliday(holidays, date):
			reason = ReasonHoliday
		case p.Index.DayIsFull(snap, date, ignoreID):
			reason = ReasonFull
		}

		blocked := reason != ReasonNone
		if !blocked && defaultIndex < 0 {
			defaultIndex = d
		}
		days = append(days, DayDescriptor{Date: date, Blocked: blocked, Reason: reason})
	}

	if defaultIndex < 0 {
		defaultIndex = len(days) - 1
	}
	return days, defaultIndex, nil
}

func hasHoliday(set map[string]struct{}, date time.Time) bool {
	_, ok := set[date.Format("2006-01-02")]
	return ok
}
