package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"portfolio/models"
)

// GoogleConfig carries the OAuth credentials for the owner's personal
// calendar. The refresh token comes from a one-time consent flow; access
// tokens are refreshed automatically by the token source.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	RedirectURI  string
	CalendarID   string
}

type googleCalendar struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleCalendar builds the Google Calendar collaborator.
func NewGoogleCalendar(ctx context.Context, cfg GoogleConfig) (Service, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, fmt.Errorf("google calendar OAuth credentials not configured")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gcal.CalendarScope},
	}
	ts := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	svc, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	calID := cfg.CalendarID
	if calID == "" {
		calID = "primary"
	}
	return &googleCalendar{svc: svc, calendarID: calID}, nil
}

func (g *googleCalendar) QueryBusy(ctx context.Context, start, end time.Time) ([]models.BusyInterval, error) {
	req := &gcal.FreeBusyRequest{
		TimeMin: start.Format(time.RFC3339),
		TimeMax: end.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}

	resp, err := g.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("free/busy query failed: %w", err)
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		return nil, nil
	}

	intervals := make([]models.BusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		busyStart, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			continue
		}
		busyEnd, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			continue
		}
		intervals = append(intervals, models.BusyInterval{Start: busyStart, End: busyEnd})
	}
	return intervals, nil
}

func (g *googleCalendar) CreateEvent(ctx context.Context, ev Event) (*CreatedEvent, error) {
	event := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &gcal.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: ev.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: ev.Timezone,
		},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             ev.RequestID,
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}
	for _, email := range ev.Attendees {
		event.Attendees = append(event.Attendees, &gcal.EventAttendee{Email: email})
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("event insert failed: %w", err)
	}

	return &CreatedEvent{EventID: created.Id, MeetLink: created.HangoutLink}, nil
}

func (g *googleCalendar) UpdateEvent(ctx context.Context, eventID string, patch EventPatch) error {
	event := &gcal.Event{}
	if patch.Start != nil {
		event.Start = &gcal.EventDateTime{
			DateTime: patch.Start.Format(time.RFC3339),
			TimeZone: patch.Timezone,
		}
	}
	if patch.End != nil {
		event.End = &gcal.EventDateTime{
			DateTime: patch.End.Format(time.RFC3339),
			TimeZone: patch.Timezone,
		}
	}

	_, err := g.svc.Events.Patch(g.calendarID, eventID, event).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("event patch failed: %w", err)
	}
	return nil
}

func (g *googleCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	err := g.svc.Events.Delete(g.calendarID, eventID).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("event delete failed: %w", err)
	}
	return nil
}
