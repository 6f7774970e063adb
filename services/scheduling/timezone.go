package scheduling

import (
	"fmt"
	"time"
)

// Time handling in this package follows one rule: composing a wall-clock
// reading into an instant always goes through the target *time.Location
// (time.Date / ParseInLocation), and rendering an instant in a zone always
// goes through In. Converting and reinterpreting are never mixed; this is
// what keeps the non-whole-hour admin offset (+05:30) exact.

const dateLayout = "2006-01-02"

// LoadZone resolves an IANA zone name, falling back to fallback when the
// name is empty or unknown.
func LoadZone(name, fallback string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	loc, err := time.LoadLocation(fallback)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseDay interprets a YYYY-MM-DD string as a calendar day in loc and
// returns midnight of that day.
func ParseDay(date string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day, nil
}

// Compose anchors a wall-clock hour on the given day in the day's location.
// Hour 24 normalizes to midnight of the following day.
func Compose(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

// DayBounds returns the full-day query range [00:00:00, 23:59:59] for the
// given day in its location.
func DayBounds(day time.Time) (time.Time, time.Time) {
	start := Compose(day, 0)
	end := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())
	return start, end
}

// ToDisplay renders an instant in the given zone. The instant itself is
// unchanged; only the wall-clock representation shifts.
func ToDisplay(t time.Time, loc *time.Location) time.Time {
	return t.In(loc)
}
