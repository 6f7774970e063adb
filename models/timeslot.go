package models

import "time"

// TimeSlot is a candidate booking window offered to a client. It lives only
// for the duration of one availability request and is never persisted.
//
// Start/AdminStart (and End/AdminEnd) are the same instant. The admin pair is
// labeled authoritative: the client echoes AdminStart back verbatim at booking
// time so the write path never re-derives it from a display-converted value.
type TimeSlot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	AdminStart      time.Time `json:"adminStart"`
	AdminEnd        time.Time `json:"adminEnd"`
	Available       bool      `json:"available"`
	DisplayTimezone string    `json:"displayTimezone"`
	AdminTimezone   string    `json:"adminTimezone"`
}

// BusyInterval is a [start, end) span during which the admin calendar reports
// the owner as unavailable. Sourced externally, used only for filtering.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
