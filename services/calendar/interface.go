package calendar

import (
	"context"
	"time"

	"portfolio/models"
)

// Event describes a calendar event to create. RequestID doubles as the
// conference-creation idempotency key.
type Event struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string
	Attendees   []string
	RequestID   string
}

// CreatedEvent is the provider's handle on a created event.
type CreatedEvent struct {
	EventID  string
	MeetLink string
}

// EventPatch updates an existing event; nil fields are left untouched.
type EventPatch struct {
	Start    *time.Time
	End      *time.Time
	Timezone string
}

// Service is the external calendar collaborator. All writes are anchored in
// the admin time zone; QueryBusy spans are admin-zone day bounds.
type Service interface {
	QueryBusy(ctx context.Context, start, end time.Time) ([]models.BusyInterval, error)
	CreateEvent(ctx context.Context, ev Event) (*CreatedEvent, error)
	UpdateEvent(ctx context.Context, eventID string, patch EventPatch) error
	DeleteEvent(ctx context.Context, eventID string) error
}
