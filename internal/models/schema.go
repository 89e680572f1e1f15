package models

// ===============================
// Ledger row schema
// ===============================
//
// Two layouts exist in the wild. Version 1 is the original 10-column sheet;
// version 2 inserts document and birthdate after phone. Field order must
// match exactly: positional updates overwrite whole rows.

const (
	SchemaV1 = 1
	SchemaV2 = 2
)

var HeadersV1 = []string{
	"id",
	"name",
	"email",
	"phone",
	"start_time_iso",
	"local_display",
	"status",
	"calendar_event_id",
	"created_at_iso",
	"notes",
}

var HeadersV2 = []string{
	"id",
	"name",
	"email",
	"phone",
	"document",
	"birthdate",
	"start_time_iso",
	"local_display",
	"status",
	"calendar_event_id",
	"created_at_iso",
	"notes",
}

func Headers(version int) []string {
	if version == SchemaV2 {
		return HeadersV2
	}
	return HeadersV1
}

func (a *Appointment) Row(version int) []string {
	if version == SchemaV2 {
		return []string{
			a.ID,
			a.Name,
			a.Email,
			a.Phone,
			a.Document,
			a.Birthdate,
			a.StartRaw,
			a.LocalDisplay,
			string(a.Status),
			a.CalendarEventID,
			a.CreatedAtISO,
			a.Notes,
		}
	}
	return []string{
		a.ID,
		a.Name,
		a.Email,
		a.Phone,
		a.StartRaw,
		a.LocalDisplay,
		string(a.Status),
		a.CalendarEventID,
		a.CreatedAtISO,
		a.Notes,
	}
}

// FromRow decodes a raw ledger row. Missing trailing fields default to "".
func FromRow(row []string, version int) Appointment {
	at := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	if version == SchemaV2 {
		return Appointment{
			ID:              at(0),
			Name:            at(1),
			Email:           at(2),
			Phone:           at(3),
			Document:        at(4),
			Birthdate:       at(5),
			StartRaw:        at(6),
			LocalDisplay:    at(7),
			Status:          Status(at(8)),
			CalendarEventID: at(9),
			CreatedAtISO:    at(10),
			Notes:           at(11),
		}
	}
	return Appointment{
		ID:              at(0),
		Name:            at(1),
		Email:           at(2),
		Phone:           at(3),
		StartRaw:        at(4),
		LocalDisplay:    at(5),
		Status:          Status(at(6)),
		CalendarEventID: at(7),
		CreatedAtISO:    at(8),
		Notes:           at(9),
	}
}

// MigrateRow lifts a v1 row into the v2 layout with empty document and
// birthdate columns. Rows already 12 wide pass through unchanged.
func MigrateRow(row []string) []string {
	if len(row) >= len(HeadersV2) {
		return row
	}
	ap := FromRow(row, SchemaV1)
	return ap.Row(SchemaV2)
}
