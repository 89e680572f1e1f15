package calendar

import (
	"context"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/AgendaCitasCO/cita-scheduler/internal/apperr"
)

// ======================================================
// Google Calendar port
// ======================================================

// GoogleCalendar scopes every operation to one configured calendar identity.
type GoogleCalendar struct {
	srv        *gcal.Service
	calendarID string
	tzName     string
}

type Config struct {
	CalendarID      string
	CredentialsFile string
	Timezone        string
}

func NewGoogleCalendar(ctx context.Context, cfg Config) (*GoogleCalendar, error) {
	if cfg.CredentialsFile == "" {
		return nil, apperr.Configuration("GOOGLE_CREDENTIALS_FILE")
	}

	srv, err := gcal.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, apperr.External("calendar", err)
	}

	id := cfg.CalendarID
	if id == "" {
		id = "primary"
	}
	return &GoogleCalendar{srv: srv, calendarID: id, tzName: cfg.Timezone}, nil
}

func (g *GoogleCalendar) event(summary string, start time.Time, durationMinutes int, attendeeEmail string) *gcal.Event {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	ev := &gcal.Event{
		Summary: summary,
		Start:   &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: g.tzName},
		End:     &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: g.tzName},
	}
	if attendeeEmail != "" {
		ev.Attendees = []*gcal.EventAttendee{{Email: attendeeEmail}}
	}
	return ev
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, summary string, start time.Time, durationMinutes int, attendeeEmail string) (string, error) {
	created, err := g.srv.Events.
		Insert(g.calendarID, g.event(summary, start, durationMinutes, attendeeEmail)).
		SendUpdates("none").
		Context(ctx).Do()
	if err != nil {
		return "", apperr.External("calendar", err)
	}
	return created.Id, nil
}

func (g *GoogleCalendar) UpdateEvent(ctx context.Context, eventID string, start time.Time, durationMinutes int, attendeeEmail string) error {
	// Patch with an empty summary leaves the stored summary untouched.
	ev := g.event("", start, durationMinutes, attendeeEmail)

	_, err := g.srv.Events.
		Patch(g.calendarID, eventID, ev).
		SendUpdates("none").
		Context(ctx).Do()
	if err != nil {
		return apperr.External("calendar", err)
	}
	return nil
}

func (g *GoogleCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	err := g.srv.Events.
		Delete(g.calendarID, eventID).
		SendUpdates("none").
		Context(ctx).Do()
	if err != nil {
		return apperr.External("calendar", err)
	}
	return nil
}
