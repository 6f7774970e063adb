package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio/models"
	"portfolio/services/calendar"
)

type fakeCalendar struct {
	busy []models.BusyInterval
	err  error

	queriedStart time.Time
	queriedEnd   time.Time
}

func (f *fakeCalendar) QueryBusy(_ context.Context, start, end time.Time) ([]models.BusyInterval, error) {
	f.queriedStart = start
	f.queriedEnd = end
	return f.busy, f.err
}

func (f *fakeCalendar) CreateEvent(context.Context, calendar.Event) (*calendar.CreatedEvent, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCalendar) UpdateEvent(context.Context, string, calendar.EventPatch) error {
	return errors.New("not implemented")
}

func (f *fakeCalendar) DeleteEvent(context.Context, string) error {
	return errors.New("not implemented")
}

func newAvailabilityService(cal calendar.Service) *DefaultAvailabilityService {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	return &DefaultAvailabilityService{
		Calendar:  cal,
		AdminZone: "Asia/Kolkata",
		Window:    Window{StartHour: 20, EndHour: 24},
		Logger:    zap.NewNop(),
		Now: func() time.Time {
			return time.Date(2026, 3, 13, 12, 0, 0, 0, loc)
		},
	}
}

func TestAvailableSlots(t *testing.T) {
	t.Run("free day returns full grid in UTC", func(t *testing.T) {
		cal := &fakeCalendar{}
		svc := newAvailabilityService(cal)

		resp, err := svc.AvailableSlots(context.Background(), AvailabilityRequest{
			Date:            "2026-03-14",
			Duration:        30,
			DisplayTimezone: "America/New_York",
		})
		require.NoError(t, err)
		require.Len(t, resp.AvailableSlots, 8)
		assert.Equal(t, "2026-03-14", resp.Date)
		assert.Equal(t, "America/New_York", resp.Timezone)
		assert.Equal(t, "Asia/Kolkata", resp.AdminTimezone)

		first := resp.AvailableSlots[0]
		assert.Equal(t, time.UTC, first.Start.Location())
		assert.Equal(t, "2026-03-14T14:30:00Z", first.Start.Format(time.RFC3339))
		assert.Equal(t, "America/New_York", first.DisplayTimezone)
		assert.Equal(t, "Asia/Kolkata", first.AdminTimezone)
		assert.True(t, first.Start.Equal(first.AdminStart))

		// Busy query spans the whole admin day, not just the offer window.
		assert.Equal(t, "2026-03-14T00:00:00+05:30", cal.queriedStart.Format(time.RFC3339))
		assert.Equal(t, "2026-03-14T23:59:59+05:30", cal.queriedEnd.Format(time.RFC3339))
	})

	t.Run("busy intervals thin the grid", func(t *testing.T) {
		loc, _ := time.LoadLocation("Asia/Kolkata")
		cal := &fakeCalendar{busy: []models.BusyInterval{{
			Start: time.Date(2026, 3, 14, 20, 0, 0, 0, loc),
			End:   time.Date(2026, 3, 14, 22, 0, 0, 0, loc),
		}}}
		svc := newAvailabilityService(cal)

		resp, err := svc.AvailableSlots(context.Background(), AvailabilityRequest{Date: "2026-03-14", Duration: 30})
		require.NoError(t, err)
		assert.Len(t, resp.AvailableSlots, 4)
	})

	t.Run("calendar failure fails closed", func(t *testing.T) {
		cal := &fakeCalendar{err: errors.New("freebusy: 503")}
		svc := newAvailabilityService(cal)

		_, err := svc.AvailableSlots(context.Background(), AvailabilityRequest{Date: "2026-03-14", Duration: 30})
		assert.ErrorIs(t, err, ErrCalendarUnavailable)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		svc := newAvailabilityService(&fakeCalendar{})
		_, err := svc.AvailableSlots(context.Background(), AvailabilityRequest{Date: "next tuesday", Duration: 30})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("non-positive duration rejected", func(t *testing.T) {
		svc := newAvailabilityService(&fakeCalendar{})
		_, err := svc.AvailableSlots(context.Background(), AvailabilityRequest{Date: "2026-03-14", Duration: 0})
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("empty display zone defaults to admin zone", func(t *testing.T) {
		svc := newAvailabilityService(&fakeCalendar{})
		resp, err := svc.AvailableSlots(context.Background(), AvailabilityRequest{Date: "2026-03-14", Duration: 60})
		require.NoError(t, err)
		require.NotEmpty(t, resp.AvailableSlots)
		assert.Equal(t, "Asia/Kolkata", resp.Timezone)
		assert.Equal(t, "Asia/Kolkata", resp.AvailableSlots[0].DisplayTimezone)
	})
}
