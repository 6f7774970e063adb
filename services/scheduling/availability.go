package scheduling

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"portfolio/models"
	"portfolio/services/calendar"
)

// busyQueryTimeout bounds the external free/busy round trip so a hung
// upstream cannot stall the booking UI.
const busyQueryTimeout = 10 * time.Second

// AvailabilityRequest is a parsed availability query.
type AvailabilityRequest struct {
	Date            string
	Duration        int
	DisplayTimezone string
}

// AvailabilityResponse is the dual-zone-tagged slot list returned to clients.
type AvailabilityResponse struct {
	Date           string            `json:"date"`
	Duration       int               `json:"duration"`
	Timezone       string            `json:"timezone"`
	AdminTimezone  string            `json:"adminTimezone"`
	AvailableSlots []models.TimeSlot `json:"availableSlots"`
}

// AvailabilityService computes bookable windows for a requested day.
type AvailabilityService interface {
	AvailableSlots(ctx context.Context, req AvailabilityRequest) (*AvailabilityResponse, error)
}

// DefaultAvailabilityService anchors all computation in the admin zone and
// fails closed when busy intervals cannot be confirmed.
type DefaultAvailabilityService struct {
	Calendar  calendar.Service
	AdminZone string
	Window    Window
	Logger    *zap.Logger

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AvailableSlots computes the candidate grid for the requested admin-zone
// day, removes externally busy windows, and tags each survivor with both the
// display instant and the admin-authoritative instant. The admin instant is
// round-tripped verbatim at booking time, never re-derived from a
// display-converted value.
func (s *DefaultAvailabilityService) AvailableSlots(ctx context.Context, req AvailabilityRequest) (*AvailabilityResponse, error) {
	if req.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	adminLoc := LoadZone(s.AdminZone, "UTC")
	displayZone := req.DisplayTimezone
	if displayZone == "" {
		displayZone = s.AdminZone
	}

	day, err := ParseDay(req.Date, adminLoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	dayStart, dayEnd := DayBounds(day)

	busyCtx, cancel := context.WithTimeout(ctx, busyQueryTimeout)
	defer cancel()
	busy, err := s.Calendar.QueryBusy(busyCtx, dayStart, dayEnd)
	if err != nil {
		s.Logger.Error("busy query failed, refusing to offer slots",
			zap.String("date", req.Date), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	candidates := GenerateSlots(day, req.Duration, s.now(), s.Window, s.AdminZone, displayZone)
	available := FilterBusy(candidates, busy)

	// Instants go out as UTC; the zone fields alone drive rendering.
	for i := range available {
		available[i].Start = available[i].Start.UTC()
		available[i].End = available[i].End.UTC()
		available[i].AdminStart = available[i].AdminStart.UTC()
		available[i].AdminEnd = available[i].AdminEnd.UTC()
	}

	s.Logger.Debug("availability computed",
		zap.String("date", req.Date),
		zap.Int("duration", req.Duration),
		zap.Int("candidates", len(candidates)),
		zap.Int("busy", len(busy)),
		zap.Int("available", len(available)))

	return &AvailabilityResponse{
		Date:           day.Format(dateLayout),
		Duration:       req.Duration,
		Timezone:       displayZone,
		AdminTimezone:  s.AdminZone,
		AvailableSlots: available,
	}, nil
}
