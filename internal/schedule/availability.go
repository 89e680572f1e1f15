package schedule

import (
	"strings"
	"time"

	"github.com/AgendaCitasCO/cita-scheduler/internal/models"
)

// ===============================
// Snapshot
// ===============================

// Snapshot is one point-in-time read of the ledger. All availability
// computation in a planning cycle is pure and snapshot-local.
type Snapshot []models.Appointment

// FindByID locates a record by a single linear scan. The returned position
// is the address for in-place ledger overwrites.
func (s Snapshot) FindByID(id string) (*models.Appointment, int) {
	for i := range s {
		if s[i].ID == id {
			return &s[i], i
		}
	}
	return nil, -1
}

func (s Snapshot) FilterByEmail(email string) []models.Appointment {
	var out []models.Appointment
	for _, ap := range s {
		if strings.EqualFold(ap.Email, email) {
			out = append(out, ap)
		}
	}
	return out
}

// ===============================
// Availability index
// ===============================

type SlotStatus string

const (
	SlotFree SlotStatus = "free"
	SlotBusy SlotStatus = "busy"
)

// Slot is derived, never persisted.
type Slot struct {
	Start  time.Time  `json:"start"`
	Status SlotStatus `json:"status"`
}

type Index struct {
	Grid Grid
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func truncateMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// ConflictSet collects the occupied instants of a date, keyed by string.
//
// Rows that parse get their start truncated to minute precision and encoded
// canonically. Rows that do not parse but carry a matching 10-character date
// prefix contribute a best-effort "<date>T<HH:MM>" key rebuilt from the raw
// value. Those fallback keys count toward day-fullness but can never match a
// canonical slot key; that asymmetry is inherited from existing ledgers and
// must not be unified away.
func (ix Index) ConflictSet(snap Snapshot, date time.Time, ignoreID string) map[string]struct{} {
	conflicts := make(map[string]struct{})
	for _, item := range snap {
		if !item.IsActive() {
			continue
		}
		if ignoreID != "" && item.ID == ignoreID {
			continue
		}

		raw := item.StartRaw
		parsed, ok := models.ParseISO(raw, ix.Grid.Loc)

		if ok && sameDate(parsed, date.In(ix.Grid.Loc)) {
			conflicts[models.EncodeISO(truncateMinute(parsed))] = struct{}{}
			continue
		}
		if !ok && len(raw) >= 10 {
			prefix, err := time.ParseInLocation("2006-01-02", raw[:10], ix.Grid.Loc)
			if err != nil || !sameDate(prefix, date.In(ix.Grid.Loc)) {
				continue
			}
			hm := ""
			if len(raw) > 11 {
				hm = raw[11:]
				if len(hm) > 5 {
					hm = hm[:5]
				}
			}
			conflicts[raw[:10]+"T"+hm] = struct{}{}
		}
	}
	return conflicts
}

// SlotChoices maps every grid slot of the date to free or busy against the
// snapshot's conflict set.
func (ix Index) SlotChoices(snap Snapshot, date time.Time, ignoreID string) []Slot {
	conflicts := ix.ConflictSet(snap, date, ignoreID)
	slots := ix.Grid.Slots(date)
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		status := SlotFree
		if _, busy := conflicts[models.EncodeISO(s)]; busy {
			status = SlotBusy
		}
		out = append(out, Slot{Start: s, Status: status})
	}
	return out
}

// DayIsFull is true once the conflict set occupies at least every slot the
// grid generates for the date.
func (ix Index) DayIsFull(snap Snapshot, date time.Time, ignoreID string) bool {
	total := ix.Grid.SlotCount(date)
	if total == 0 {
		return false
	}
	return len(ix.ConflictSet(snap, date, ignoreID)) >= total
}

// HasConflict is the authoritative commit-time gate: an Active, non-ignored
// record whose stored start equals targetISO exactly, byte for byte. It is
// intentionally independent of the normalized comparison in SlotChoices.
func HasConflict(snap Snapshot, targetISO string, ignoreID string) bool {
	for _, item := range snap {
		if !item.IsActive() {
			continue
		}
		if ignoreID != "" && item.ID == ignoreID {
			continue
		}
		if item.StartRaw == targetISO {
			return true
		}
	}
	return false
}
