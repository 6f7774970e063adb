package calendar

import (
	"fmt"
	"net/url"
	"time"
)

// EventLink returns the owner-facing link to an event on calendar.google.com.
func EventLink(eventID string) string {
	return fmt.Sprintf("https://calendar.google.com/calendar/event?eid=%s", eventID)
}

// RenderLink builds an "add to Google Calendar" template URL the guest can
// open to copy the event into their own calendar.
func RenderLink(title, details string, start, end time.Time, location string) string {
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", title)
	params.Set("details", details)
	params.Set("dates", fmt.Sprintf("%s/%s", renderTime(start), renderTime(end)))
	if location != "" {
		params.Set("location", location)
	}
	return "https://calendar.google.com/calendar/render?" + params.Encode()
}

// renderTime formats an instant the way the render endpoint expects:
// basic-format UTC with no separators.
func renderTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}
