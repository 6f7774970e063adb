package scheduling

import (
	"time"

	"portfolio/models"
)

// Window is the daily offer window in admin-zone wall-clock hours.
// EndHour may be 24 (midnight of the next day).
type Window struct {
	StartHour int
	EndHour   int
}

// GenerateSlots tiles the offer window of the given admin-zone day with
// non-overlapping candidates of exactly duration minutes. Candidates whose
// start is not strictly after now are excluded, as is any partial trailing
// slot. A day entirely in the past yields an empty sequence, not an error.
func GenerateSlots(day time.Time, duration int, now time.Time, win Window, adminZone, displayZone string) []models.TimeSlot {
	windowStart := Compose(day, win.StartHour)
	windowEnd := Compose(day, win.EndHour)
	step := time.Duration(duration) * time.Minute

	var slots []models.TimeSlot
	for cur := windowStart; ; cur = cur.Add(step) {
		end := cur.Add(step)
		if end.After(windowEnd) {
			break
		}
		if !cur.After(now) {
			continue
		}
		slots = append(slots, models.TimeSlot{
			Start:           cur,
			End:             end,
			AdminStart:      cur,
			AdminEnd:        end,
			Available:       true,
			DisplayTimezone: displayZone,
			AdminTimezone:   adminZone,
		})
	}
	return slots
}

// Overlaps reports whether two [start, end) intervals intersect. Touching
// boundaries do not count: a slot ending exactly when a busy interval starts
// is free. This is the single overlap definition used by both the
// availability filter and the pre-booking conflict check.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FilterBusy removes candidates overlapping any busy interval, preserving
// order. Busy intervals need not be sorted or disjoint.
func FilterBusy(slots []models.TimeSlot, busy []models.BusyInterval) []models.TimeSlot {
	if len(busy) == 0 {
		return slots
	}

	available := make([]models.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		blocked := false
		for _, b := range busy {
			if Overlaps(slot.Start, slot.End, b.Start, b.End) {
				blocked = true
				break
			}
		}
		if !blocked {
			available = append(available, slot)
		}
	}
	return available
}
