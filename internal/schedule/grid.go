package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
)

// ===============================
// Time grid
// ===============================

// Segment is one business-hours window on a date, half-open:
// [StartHour:StartMinute, EndHour:EndMinute).
type Segment struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// ParseSegments parses "08:00-18:00" or "08:00-12:00,14:00-18:00".
func ParseSegments(spec string) ([]Segment, error) {
	parts := strings.Split(spec, ",")
	segments := make([]Segment, 0, len(parts))
	for _, part := range parts {
		bounds := strings.Split(strings.TrimSpace(part), "-")
		if len(bounds) != 2 {
			return nil, apperr.Validation("segments", fmt.Sprintf("invalid segment %q", part))
		}
		sh, sm, err := parseHM(bounds[0])
		if err != nil {
			return nil, err
		}
		eh, em, err := parseHM(bounds[1])
		if err != nil {
			return nil, err
		}
		if eh*60+em <= sh*60+sm {
			return nil, apperr.Validation("segments", fmt.Sprintf("segment %q ends before it starts", part))
		}
		segments = append(segments, Segment{StartHour: sh, StartMinute: sm, EndHour: eh, EndMinute: em})
	}
	return segments, nil
}

func parseHM(s string) (int, int, error) {
	bits := strings.Split(strings.TrimSpace(s), ":")
	if len(bits) != 2 {
		return 0, 0, apperr.Validation("segments", fmt.Sprintf("invalid time %q", s))
	}
	h, err := strconv.Atoi(bits[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, apperr.Validation("segments", fmt.Sprintf("invalid hour %q", s))
	}
	m, err := strconv.Atoi(bits[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, apperr.Validation("segments", fmt.Sprintf("invalid minute %q", s))
	}
	return h, m, nil
}

// Grid produces the bookable slot-start instants for a date. It is pure
// configuration: identical (date, segments, granularity) always yields the
// identical sequence.
type Grid struct {
	Segments    []Segment
	SlotMinutes int
	Loc         *time.Location
}

func (g Grid) start(date time.Time, s Segment) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), s.StartHour, s.StartMinute, 0, 0, g.Loc)
}

func (g Grid) end(date time.Time, s Segment) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), s.EndHour, s.EndMinute, 0, 0, g.Loc)
}

// Slots walks each segment in order at the configured granularity while the
// candidate remains strictly before the segment end.
func (g Grid) Slots(date time.Time) []time.Time {
	step := time.Duration(g.SlotMinutes) * time.Minute
	var slots []time.Time
	for _, seg := range g.Segments {
		end := g.end(date, seg)
		for cur := g.start(date, seg); cur.Before(end); cur = cur.Add(step) {
			slots = append(slots, cur)
		}
	}
	return slots
}

func (g Grid) SlotCount(date time.Time) int {
	return len(g.Slots(date))
}

// WithinBusinessHours reports whether t falls inside any segment. The exact
// end boundary of the last segment is accepted even though the grid never
// generates it; existing ledgers rely on that edge.
func (g Grid) WithinBusinessHours(t time.Time) bool {
	if len(g.Segments) == 0 {
		return false
	}
	t = t.In(g.Loc)
	for _, seg := range g.Segments {
		if !t.Before(g.start(t, seg)) && t.Before(g.end(t, seg)) {
			return true
		}
	}
	last := g.Segments[len(g.Segments)-1]
	return t.Equal(g.end(t, last))
}

// Aligned reports whether t is one of the instants the grid generates for
// its own date: inside a segment, on a granularity boundary, with zero
// seconds. Distinct from WithinBusinessHours and both checks are required.
func (g Grid) Aligned(t time.Time) bool {
	t = t.In(g.Loc)
	if t.Second() != 0 || t.Nanosecond() != 0 {
		return false
	}
	for _, seg := range g.Segments {
		start := g.start(t, seg)
		if t.Before(start) || !t.Before(g.end(t, seg)) {
			continue
		}
		offset := t.Sub(start)
		if offset%(time.Duration(g.SlotMinutes)*time.Minute) == 0 {
			return true
		}
	}
	return false
}
