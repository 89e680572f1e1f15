package holidays

import (
	"context"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
)

// ======================================================
// Jurisdiction holidays
// ======================================================

var independenceDay = &cal.Holiday{
	Name:  "Día de la Independencia",
	Type:  cal.ObservancePublic,
	Month: time.July,
	Day:   20,
	Func:  cal.CalcDayOfMonth,
}

var boyacaDay = &cal.Holiday{
	Name:  "Batalla de Boyacá",
	Type:  cal.ObservancePublic,
	Month: time.August,
	Day:   7,
	Func:  cal.CalcDayOfMonth,
}

var jurisdictions = map[string][]*cal.Holiday{
	"CO": {
		aa.NewYear,
		aa.Epiphany,
		aa.MaundyThursday,
		aa.GoodFriday,
		aa.WorkersDay,
		aa.AscensionDay,
		aa.CorpusChristi,
		independenceDay,
		boyacaDay,
		aa.AssumptionOfMary,
		aa.AllSaintsDay,
		aa.ImmaculateConception,
		aa.ChristmasDay,
	},
}

// Provider resolves jurisdiction holidays per call. Results are never cached
// here: each planning cycle recomputes its span.
type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) HolidaysFor(ctx context.Context, jurisdiction string, years []int) (map[string]struct{}, error) {
	defs, ok := jurisdictions[strings.ToUpper(strings.TrimSpace(jurisdiction))]
	if !ok {
		return nil, apperr.Configuration("HOLIDAY_JURISDICTION")
	}

	dates := make(map[string]struct{})
	for _, year := range years {
		for _, h := range defs {
			actual, observed := h.Calc(year)
			if !actual.IsZero() {
				dates[actual.Format("2006-01-02")] = struct{}{}
			}
			if !observed.IsZero() {
				dates[observed.Format("2006-01-02")] = struct{}{}
			}
		}
	}
	return dates, nil
}
