package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
	"github.com/AgendaCitasCO/cita-scheduler/internal/models"
)

func testLedger(t *testing.T) *GormLedger {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ledger.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	if err := db.AutoMigrate(&LedgerRow{}); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return NewGormLedger(db)
}

func appointment(id, startRaw string) models.Appointment {
	return models.Appointment{
		ID:           id,
		Name:         "Ana Torres",
		Email:        "ana@example.com",
		Phone:        "3001234567",
		StartRaw:     startRaw,
		Status:       models.StatusActive,
		CreatedAtISO: "2024-05-01T12:00:00Z",
	}
}

func TestGormLedger_AppendPreservesOrder(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := l.Append(ctx, appointment(id, "2024-06-03T09:00:00Z")); err != nil {
			t.Fatalf("Append(%s): %v", id, err)
		}
	}

	snap, err := l.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(snap) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(snap))
	}
	for i, want := range []string{"a", "b", "c"} {
		if snap[i].ID != want {
			t.Fatalf("position %d: got %s, want %s", i, snap[i].ID, want)
		}
	}
}

func TestGormLedger_UpdateAtOverwritesInPlace(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := l.Append(ctx, appointment(id, "2024-06-03T09:00:00Z")); err != nil {
			t.Fatalf("Append(%s): %v", id, err)
		}
	}

	updated := appointment("b", "2024-06-03T11:30:00Z")
	updated.Status = models.StatusCanceled
	updated.Notes = "viaje"
	if err := l.UpdateAt(ctx, 1, updated); err != nil {
		t.Fatalf("UpdateAt: %v", err)
	}

	snap, err := l.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(snap) != 3 {
		t.Fatalf("overwrite must not change row count, got %d", len(snap))
	}
	if snap[1].ID != "b" || snap[1].Status != models.StatusCanceled || snap[1].Notes != "viaje" {
		t.Fatalf("position 1 not overwritten: %+v", snap[1])
	}
	if snap[0].ID != "a" || snap[2].ID != "c" {
		t.Fatal("neighboring rows must be untouched")
	}
}

func TestGormLedger_UpdateAtOutOfRange(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	if err := l.Append(ctx, appointment("a", "2024-06-03T09:00:00Z")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	err := l.UpdateAt(ctx, 5, appointment("x", "2024-06-03T10:00:00Z"))
	if !apperr.IsExternal(err) {
		t.Fatalf("expected ExternalError, got %v", err)
	}
}

func TestGormLedger_RoundtripFields(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	ap := appointment("a", "2024-06-03T09:00:00Z")
	ap.Document = "1020304050"
	ap.Birthdate = "1990-04-12"
	ap.LocalDisplay = "2024-06-03 09:00 AM (UTC)"
	ap.CalendarEventID = "evt-1"
	ap.Notes = "control"

	if err := l.Append(ctx, ap); err != nil {
		t.Fatalf("Append: %v", err)
	}
	snap, err := l.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if snap[0] != ap {
		t.Fatalf("roundtrip mismatch:\n got %+v\nwant %+v", snap[0], ap)
	}
}
