package scheduling

import "errors"

var (
	// ErrInvalidDate is returned when the requested date does not parse to a
	// calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidDuration is returned when the requested duration is not a
	// positive number of minutes.
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")

	// ErrCalendarUnavailable is returned when the external calendar cannot
	// confirm busy intervals. The availability path fails closed: no slots
	// are offered without that confirmation.
	ErrCalendarUnavailable = errors.New("calendar unavailable")
)
