package schedule

import (
	"testing"
	"time"
)

func mustSegments(t *testing.T, spec string) []Segment {
	t.Helper()
	segs, err := ParseSegments(spec)
	if err != nil {
		t.Fatalf("ParseSegments(%q): %v", spec, err)
	}
	return segs
}

func singleGrid(t *testing.T) Grid {
	return Grid{Segments: mustSegments(t, "08:00-18:00"), SlotMinutes: 30, Loc: time.UTC}
}

func splitGrid(t *testing.T) Grid {
	return Grid{Segments: mustSegments(t, "08:00-12:00,14:00-18:00"), SlotMinutes: 15, Loc: time.UTC}
}

func TestSlots_SingleSegment(t *testing.T) {
	g := singleGrid(t)
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	slots := g.Slots(date)
	if len(slots) != 20 {
		t.Fatalf("expected 20 slots, got %d", len(slots))
	}
	if !slots[0].Equal(date.Add(8 * time.Hour)) {
		t.Fatalf("expected first slot 08:00, got %s", slots[0])
	}
	if !slots[19].Equal(date.Add(17*time.Hour + 30*time.Minute)) {
		t.Fatalf("expected last slot 17:30, got %s", slots[19])
	}
}

func TestSlots_TwoSegments(t *testing.T) {
	g := splitGrid(t)
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	slots := g.Slots(date)
	if len(slots) != 32 {
		t.Fatalf("expected 32 slots, got %d", len(slots))
	}

	// The morning segment must end strictly before 12:00 and the afternoon
	// segment resume at 14:00, in order.
	if !slots[15].Equal(date.Add(11*time.Hour + 45*time.Minute)) {
		t.Fatalf("expected slot 16 at 11:45, got %s", slots[15])
	}
	if !slots[16].Equal(date.Add(14 * time.Hour)) {
		t.Fatalf("expected slot 17 at 14:00, got %s", slots[16])
	}

	for i := 1; i < len(slots); i++ {
		if !slots[i].After(slots[i-1]) {
			t.Fatalf("slots not strictly increasing at %d", i)
		}
	}
}

func TestSlots_Deterministic(t *testing.T) {
	g := splitGrid(t)
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	a := g.Slots(date)
	b := g.Slots(date)
	if len(a) != len(b) {
		t.Fatalf("non-deterministic length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("non-deterministic slot at %d: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestWithinBusinessHours_InclusiveDayEnd(t *testing.T) {
	g := singleGrid(t)
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		at   time.Duration
		want bool
	}{
		{8 * time.Hour, true},
		{17*time.Hour + 59*time.Minute, true},
		{18 * time.Hour, true}, // exact end of the last segment is accepted
		{18*time.Hour + 1*time.Minute, false},
		{7*time.Hour + 59*time.Minute, false},
	}
	for _, tc := range cases {
		if got := g.WithinBusinessHours(date.Add(tc.at)); got != tc.want {
			t.Fatalf("WithinBusinessHours(+%s) = %v, want %v", tc.at, got, tc.want)
		}
	}
}

func TestWithinBusinessHours_TwoSegments(t *testing.T) {
	g := splitGrid(t)
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	// Lunch gap is outside; 12:00 ends the first segment but only the last
	// segment's end is inclusive.
	if g.WithinBusinessHours(date.Add(12 * time.Hour)) {
		t.Fatal("12:00 should be outside business hours")
	}
	if g.WithinBusinessHours(date.Add(13 * time.Hour)) {
		t.Fatal("13:00 should be outside business hours")
	}
	if !g.WithinBusinessHours(date.Add(14 * time.Hour)) {
		t.Fatal("14:00 should be within business hours")
	}
	if !g.WithinBusinessHours(date.Add(18 * time.Hour)) {
		t.Fatal("18:00 should be accepted as the last segment end")
	}
}

func TestAligned(t *testing.T) {
	g := singleGrid(t)
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	if !g.Aligned(date.Add(9*time.Hour + 30*time.Minute)) {
		t.Fatal("09:30 should be aligned on a 30-minute grid")
	}
	if g.Aligned(date.Add(9*time.Hour + 20*time.Minute)) {
		t.Fatal("09:20 should not be aligned")
	}
	if g.Aligned(date.Add(9*time.Hour + 30*time.Minute + 5*time.Second)) {
		t.Fatal("sub-minute offsets should not be aligned")
	}
	// The inclusive business-hours edge is not a grid slot.
	if g.Aligned(date.Add(18 * time.Hour)) {
		t.Fatal("18:00 is never generated by the grid")
	}
}

func TestParseSegments_Invalid(t *testing.T) {
	for _, spec := range []string{"", "08:00", "8-18", "12:00-08:00", "08:00-25:00"} {
		if _, err := ParseSegments(spec); err == nil {
			t.Fatalf("ParseSegments(%q): expected error", spec)
		}
	}
}
