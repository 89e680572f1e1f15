package ledger

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
	"github.com/AgendaCitasCO/cita-scheduler/internal/models"
	"github.com/AgendaCitasCO/cita-scheduler/internal/schedule"
)

// ======================================================
// Google Sheets ledger
// ======================================================

// SheetsLedger keeps appointments as rows of a spreadsheet tab. Row 1 is the
// header; data starts at row 2, so snapshot position p maps to sheet row p+2.
type SheetsLedger struct {
	srv           *sheets.Service
	spreadsheetID string
	sheetName     string
	schemaVersion int
	loc           *time.Location
}

type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	SchemaVersion   int
	CredentialsFile string
	Loc             *time.Location
}

func NewSheetsLedger(ctx context.Context, cfg SheetsConfig) (*SheetsLedger, error) {
	if cfg.SpreadsheetID == "" {
		return nil, apperr.Configuration("GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	if cfg.CredentialsFile == "" {
		return nil, apperr.Configuration("GOOGLE_CREDENTIALS_FILE")
	}

	srv, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, apperr.External("ledger", err)
	}

	name := cfg.SheetName
	if name == "" {
		name = "Appointments"
	}
	return &SheetsLedger{
		srv:           srv,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     name,
		schemaVersion: cfg.SchemaVersion,
		loc:           cfg.Loc,
	}, nil
}

func (l *SheetsLedger) lastColumn() string {
	if l.schemaVersion == models.SchemaV2 {
		return "L"
	}
	return "J"
}

// ensureHeaders makes the header row match the active schema, creating the
// tab when the spreadsheet does not have it yet.
func (l *SheetsLedger) ensureHeaders(ctx context.Context) error {
	headers := models.Headers(l.schemaVersion)
	want := make([]interface{}, len(headers))
	for i, h := range headers {
		want[i] = h
	}

	current, err := l.srv.Spreadsheets.Values.
		Get(l.spreadsheetID, fmt.Sprintf("%s!1:1", l.sheetName)).
		Context(ctx).Do()
	if err != nil {
		if gerr, ok := err.(*googleapi.Error); ok && gerr.Code == 400 {
			if err := l.addSheet(ctx); err != nil {
				return err
			}
			return l.writeHeaders(ctx, want)
		}
		return apperr.External("ledger", err)
	}

	if len(current.Values) == 0 || !rowEquals(current.Values[0], headers) {
		return l.writeHeaders(ctx, want)
	}
	return nil
}

func (l *SheetsLedger) addSheet(ctx context.Context) error {
	_, err := l.srv.Spreadsheets.BatchUpdate(l.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: l.sheetName},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return apperr.External("ledger", err)
	}
	return nil
}

func (l *SheetsLedger) writeHeaders(ctx context.Context, headers []interface{}) error {
	_, err := l.srv.Spreadsheets.Values.
		Update(l.spreadsheetID, fmt.Sprintf("%s!1:1", l.sheetName), &sheets.ValueRange{
			Values: [][]interface{}{headers},
		}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return apperr.External("ledger", err)
	}
	return nil
}

func rowEquals(got []interface{}, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, v := range got {
		s, ok := v.(string)
		if !ok || s != want[i] {
			return false
		}
	}
	return true
}

func (l *SheetsLedger) FetchAll(ctx context.Context) (schedule.Snapshot, error) {
	if err := l.ensureHeaders(ctx); err != nil {
		return nil, err
	}

	rangeRef := fmt.Sprintf("%s!A2:%s", l.sheetName, l.lastColumn())
	result, err := l.srv.Spreadsheets.Values.
		Get(l.spreadsheetID, rangeRef).
		Context(ctx).Do()
	if err != nil {
		return nil, apperr.External("ledger", err)
	}

	snap := make(schedule.Snapshot, 0, len(result.Values))
	for _, raw := range result.Values {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i], _ = v.(string)
		}
		snap = append(snap, models.FromRow(row, l.schemaVersion))
	}
	return snap, nil
}

func (l *SheetsLedger) Append(ctx context.Context, ap models.Appointment) error {
	if err := l.ensureHeaders(ctx); err != nil {
		return err
	}

	_, err := l.srv.Spreadsheets.Values.
		Append(l.spreadsheetID, fmt.Sprintf("%s!A1", l.sheetName), &sheets.ValueRange{
			Values: [][]interface{}{toInterfaces(ap.Row(l.schemaVersion))},
		}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return apperr.External("ledger", err)
	}
	return nil
}

func (l *SheetsLedger) UpdateAt(ctx context.Context, position int, ap models.Appointment) error {
	row := position + 2 // header skew
	rangeRef := fmt.Sprintf("%s!A%d:%s%d", l.sheetName, row, l.lastColumn(), row)

	_, err := l.srv.Spreadsheets.Values.
		Update(l.spreadsheetID, rangeRef, &sheets.ValueRange{
			Values: [][]interface{}{toInterfaces(ap.Row(l.schemaVersion))},
		}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return apperr.External("ledger", err)
	}
	return nil
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
