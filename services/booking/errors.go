// File: services/booking/errors.go
package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotTaken means the requested window overlapped a busy interval at
	// the final pre-write check.
	ErrSlotTaken = errors.New("the requested time slot is no longer available")

	ErrMeetingNotFound = errors.New("meeting not found")
	ErrInvalidToken    = errors.New("invalid or expired token")

	// ErrMeetingCanceled guards the terminal state: a canceled meeting can
	// be neither rescheduled nor canceled again.
	ErrMeetingCanceled = errors.New("meeting has been canceled")
)

// ValidationError rejects a malformed booking request; the message is safe
// to surface to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// PartialFailureError reports a booking that created a calendar event but
// failed to persist, after compensation was attempted. Distinct from a plain
// persistence error so callers can tell the client whether external state
// may have been touched.
type PartialFailureError struct {
	EventID     string
	Compensated bool
	Err         error
}

func (e *PartialFailureError) Error() string {
	if e.Compensated {
		return fmt.Sprintf("booking failed after calendar write (event %s removed): %v", e.EventID, e.Err)
	}
	return fmt.Sprintf("booking failed after calendar write (event %s may remain): %v", e.EventID, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
