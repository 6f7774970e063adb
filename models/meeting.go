package models

import "time"

// Meeting status values. A canceled meeting is terminal; a rescheduled
// meeting may be rescheduled again or canceled later.
const (
	StatusConfirmed   = "confirmed"
	StatusCanceled    = "canceled"
	StatusRescheduled = "rescheduled"
)

// Meeting is the persisted booking record.
//
// DateTime and AdminDateTime denote the same instant. The duplication is
// deliberate: AdminDateTime is the admin-authoritative value used verbatim
// for calendar writes, and is never reconstructed from a display-converted
// copy. Timezone only labels how the instant is rendered to the user.
type Meeting struct {
	ID              string            `bson:"id" json:"id"`
	Name            string            `bson:"name" json:"name"`
	Email           string            `bson:"email" json:"email"`
	Purpose         string            `bson:"purpose,omitempty" json:"purpose,omitempty"`
	DateTime        time.Time         `bson:"dateTime" json:"dateTime"`
	Duration        int               `bson:"duration" json:"duration"`
	EventID         string            `bson:"eventId" json:"eventId"`
	MeetLink        string            `bson:"meetLink" json:"meetLink"`
	RescheduleToken string            `bson:"rescheduleToken" json:"-"`
	CancelToken     string            `bson:"cancelToken" json:"-"`
	Status          string            `bson:"status" json:"status"`
	CreatedAt       time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt       *time.Time        `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	CanceledAt      *time.Time        `bson:"canceledAt,omitempty" json:"canceledAt,omitempty"`
	Timezone        string            `bson:"timezone,omitempty" json:"timezone,omitempty"`
	AdminDateTime   time.Time         `bson:"adminDateTime,omitempty" json:"adminDateTime,omitempty"`
	Metadata        map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// MeetingFilter narrows List queries.
type MeetingFilter struct {
	Status string
	Email  string
}
