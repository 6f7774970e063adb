package models

// BookMeetingRequest is the booking creation payload. DateTime must be the
// adminStart value returned by the availability endpoint, as an RFC 3339
// instant; it is trusted as admin-zone-correct and used without conversion.
type BookMeetingRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Purpose  string `json:"purpose,omitempty"`
	DateTime string `json:"dateTime"`
	Duration int    `json:"duration"`
	Timezone string `json:"timezone,omitempty"`

	// SessionID ties the booking back to the visitor's tracking record.
	SessionID string `json:"sessionId,omitempty"`
}

// BookMeetingResponse is returned on successful booking.
type BookMeetingResponse struct {
	Success        bool   `json:"success"`
	MeetingID      string `json:"meetingId"`
	MeetLink       string `json:"meetLink"`
	CalendarLink   string `json:"calendarLink"`
	RescheduleLink string `json:"rescheduleLink"`
	CancelLink     string `json:"cancelLink"`
	Timezone       string `json:"timezone"`
	DateTime       string `json:"dateTime"`
}

// RescheduleMeetingRequest moves an existing meeting to a new admin-zone
// instant, gated by the reschedule token issued at creation.
type RescheduleMeetingRequest struct {
	MeetingID   string `json:"meetingId"`
	NewDateTime string `json:"newDateTime"`
	Token       string `json:"token"`
}

// RescheduleMeetingResponse is returned on successful reschedule.
type RescheduleMeetingResponse struct {
	Success     bool   `json:"success"`
	MeetingID   string `json:"meetingId"`
	NewDateTime string `json:"newDateTime"`
	MeetLink    string `json:"meetLink"`
	Message     string `json:"message"`
	Timezone    string `json:"timezone"`
}

// ReminderPayload is the task body for a scheduled reminder email.
type ReminderPayload struct {
	MeetingID string `json:"meetingId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	DateTime  string `json:"dateTime"`
	Duration  int    `json:"duration"`
	Timezone  string `json:"timezone"`
	MeetLink  string `json:"meetLink"`
}
