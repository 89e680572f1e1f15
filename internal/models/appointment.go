package models

import "time"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
)

// ===============================
// Appointment
// ===============================

// Appointment is the persisted ledger record. StartRaw keeps the stored
// start_time_iso value byte-for-byte: the commit-time conflict gate compares
// raw strings, and legacy ledgers contain rows that do not parse cleanly.
type Appointment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Document  string `json:"document,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`

	StartRaw     string `json:"start_time_iso"`
	LocalDisplay string `json:"local_display"`

	Status          Status `json:"status"`
	CalendarEventID string `json:"calendar_event_id"`
	CreatedAtISO    string `json:"created_at_iso"`
	Notes           string `json:"notes"`
}

func (a *Appointment) IsActive() bool {
	return a.Status == StatusActive
}

// Start parses the stored instant in loc. ok is false for malformed rows;
// callers must not drop those rows, see schedule.Index.
func (a *Appointment) Start(loc *time.Location) (time.Time, bool) {
	return ParseISO(a.StartRaw, loc)
}

// ParseISO accepts the encodings found in real ledgers: full RFC 3339,
// a zone-naive timestamp, and a date-time without seconds. Naive values are
// interpreted in loc; aware values are converted to it.
func ParseISO(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), true
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EncodeISO is the canonical instant encoding written to the ledger.
func EncodeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatLocal renders an instant for the local_display column.
func FormatLocal(t time.Time) string {
	return t.Format("2006-01-02 03:04 PM (MST)")
}
