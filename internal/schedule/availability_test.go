package schedule

import (
	"testing"
	"time"

	"github.com/AgendaCitasCO/cita-scheduler/internal/models"
)

func active(id, startRaw string) models.Appointment {
	return models.Appointment{ID: id, Status: models.StatusActive, StartRaw: startRaw}
}

func TestConflictSet_ParsedAndTruncated(t *testing.T) {
	ix := Index{Grid: singleGrid(t)}
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	snap := Snapshot{
		active("a", "2024-06-03T09:00:30Z"), // seconds must be truncated away
		active("b", "2024-06-04T09:00:00Z"), // other date, excluded
		{ID: "c", Status: models.StatusCanceled, StartRaw: "2024-06-03T10:00:00Z"},
	}

	set := ix.ConflictSet(snap, date, "")
	if len(set) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(set))
	}
	if _, ok := set["2024-06-03T09:00:00Z"]; !ok {
		t.Fatalf("expected minute-truncated key, got %v", set)
	}
}

func TestConflictSet_MalformedFallback(t *testing.T) {
	ix := Index{Grid: singleGrid(t)}
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	// Space-separated timestamp does not parse; the date prefix matches, so
	// the row still occupies the day via the rebuilt key.
	snap := Snapshot{active("a", "2024-06-03 09:00")}

	set := ix.ConflictSet(snap, date, "")
	if _, ok := set["2024-06-03T09:00"]; !ok {
		t.Fatalf("expected fallback key, got %v", set)
	}

	// The fallback key never matches a canonical slot key, so the slot still
	// reads free even though the day counts one occupant.
	slots := ix.SlotChoices(snap, date, "")
	for _, s := range slots {
		if s.Status != SlotFree {
			t.Fatalf("expected all slots free, got busy at %s", s.Start)
		}
	}
}

func TestConflictSet_IgnoreID(t *testing.T) {
	ix := Index{Grid: singleGrid(t)}
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	snap := Snapshot{active("a", "2024-06-03T10:00:00Z")}
	if len(ix.ConflictSet(snap, date, "a")) != 0 {
		t.Fatal("ignored record must not conflict with itself")
	}
}

func TestSlotChoices_BusyMarking(t *testing.T) {
	ix := Index{Grid: singleGrid(t)}
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	snap := Snapshot{active("a", "2024-06-03T09:00:00Z")}
	slots := ix.SlotChoices(snap, date, "")
	if len(slots) != 20 {
		t.Fatalf("expected 20 slots, got %d", len(slots))
	}

	for _, s := range slots {
		want := SlotFree
		if s.Start.Equal(date.Add(9 * time.Hour)) {
			want = SlotBusy
		}
		if s.Status != want {
			t.Fatalf("slot %s: got %s, want %s", s.Start, s.Status, want)
		}
	}
}

func TestDayIsFull(t *testing.T) {
	// Two-slot day keeps the fixture small.
	g := Grid{Segments: mustSegments(t, "08:00-09:00"), SlotMinutes: 30, Loc: time.UTC}
	ix := Index{Grid: g}
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	snap := Snapshot{active("a", "2024-06-03T08:00:00Z")}
	if ix.DayIsFull(snap, date, "") {
		t.Fatal("one of two slots occupied, day must not be full")
	}

	snap = append(snap, active("b", "2024-06-03T08:30:00Z"))
	if !ix.DayIsFull(snap, date, "") {
		t.Fatal("all slots occupied, day must be full")
	}

	// A malformed row counts toward fullness through the fallback key.
	snap = Snapshot{
		active("a", "2024-06-03T08:00:00Z"),
		active("b", "2024-06-03 08:30"),
	}
	if !ix.DayIsFull(snap, date, "") {
		t.Fatal("fallback-keyed row must count toward day fullness")
	}
}

func TestHasConflict_ExactMatchOnly(t *testing.T) {
	snap := Snapshot{
		active("a", "2024-06-03T09:00:00Z"),
		{ID: "b", Status: models.StatusCanceled, StartRaw: "2024-06-03T10:00:00Z"},
	}

	if !HasConflict(snap, "2024-06-03T09:00:00Z", "") {
		t.Fatal("exact match must conflict")
	}
	if HasConflict(snap, "2024-06-03T09:00:30Z", "") {
		t.Fatal("HasConflict must not normalize: different raw strings do not collide")
	}
	if HasConflict(snap, "2024-06-03T10:00:00Z", "") {
		t.Fatal("canceled records must be ignored")
	}
	if HasConflict(snap, "2024-06-03T09:00:00Z", "a") {
		t.Fatal("ignored id must be excluded")
	}
}

func TestSnapshot_FindByID(t *testing.T) {
	snap := Snapshot{active("a", ""), active("b", "")}

	ap, pos := snap.FindByID("b")
	if ap == nil || pos != 1 {
		t.Fatalf("expected position 1, got %v %d", ap, pos)
	}
	if ap.ID != "b" {
		t.Fatalf("expected record b, got %s", ap.ID)
	}

	if ap, pos := snap.FindByID("zzz"); ap != nil || pos != -1 {
		t.Fatalf("expected miss, got %v %d", ap, pos)
	}
}

func TestSnapshot_FilterByEmail(t *testing.T) {
	snap := Snapshot{
		{ID: "a", Email: "Ana@Example.com", Status: models.StatusActive},
		{ID: "b", Email: "other@example.com", Status: models.StatusActive},
	}

	got := snap.FilterByEmail("ana@example.COM")
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("case-insensitive match failed: %v", got)
	}
}
