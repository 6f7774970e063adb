package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/models"
)

func adminLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

func TestGenerateSlotsTilesWindow(t *testing.T) {
	loc := adminLoc(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 13, 12, 0, 0, 0, loc)
	win := Window{StartHour: 20, EndHour: 24}

	tests := []struct {
		name     string
		duration int
		expected int
	}{
		{name: "30 minute slots", duration: 30, expected: 8},
		{name: "15 minute slots", duration: 15, expected: 16},
		{name: "60 minute slots", duration: 60, expected: 4},
		{name: "partial trailing slot dropped", duration: 45, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := GenerateSlots(day, tt.duration, now, win, "Asia/Kolkata", "America/New_York")
			require.Len(t, slots, tt.expected)

			windowStart := time.Date(2026, 3, 14, 20, 0, 0, 0, loc)
			assert.True(t, slots[0].Start.Equal(windowStart), "grid starts at window start")

			for i, s := range slots {
				assert.Equal(t, time.Duration(tt.duration)*time.Minute, s.End.Sub(s.Start))
				assert.True(t, s.Available)
				assert.True(t, s.Start.Equal(s.AdminStart), "admin label denotes the same instant")
				assert.True(t, s.End.Equal(s.AdminEnd))
				if i > 0 {
					assert.True(t, s.Start.Equal(slots[i-1].End), "non-overlapping tiling")
				}
			}
		})
	}
}

func TestGenerateSlotsExcludesPast(t *testing.T) {
	loc := adminLoc(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
	win := Window{StartHour: 20, EndHour: 24}

	t.Run("day entirely in the past", func(t *testing.T) {
		now := time.Date(2026, 3, 15, 1, 0, 0, 0, loc)
		slots := GenerateSlots(day, 30, now, win, "Asia/Kolkata", "Asia/Kolkata")
		assert.Empty(t, slots)
	})

	t.Run("mid-window now drops elapsed slots", func(t *testing.T) {
		now := time.Date(2026, 3, 14, 21, 10, 0, 0, loc)
		slots := GenerateSlots(day, 30, now, win, "Asia/Kolkata", "Asia/Kolkata")
		require.Len(t, slots, 5)
		assert.True(t, slots[0].Start.Equal(time.Date(2026, 3, 14, 21, 30, 0, 0, loc)))
	})

	t.Run("slot starting exactly at now is excluded", func(t *testing.T) {
		now := time.Date(2026, 3, 14, 20, 0, 0, 0, loc)
		slots := GenerateSlots(day, 30, now, win, "Asia/Kolkata", "Asia/Kolkata")
		require.Len(t, slots, 7)
		assert.True(t, slots[0].Start.Equal(time.Date(2026, 3, 14, 20, 30, 0, 0, loc)))
	})
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	loc := adminLoc(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 13, 12, 0, 0, 0, loc)
	win := Window{StartHour: 20, EndHour: 24}

	first := GenerateSlots(day, 30, now, win, "Asia/Kolkata", "Asia/Kolkata")
	second := GenerateSlots(day, 30, now, win, "Asia/Kolkata", "Asia/Kolkata")
	assert.Equal(t, first, second)
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 14, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name               string
		slotStart, slotEnd time.Time
		busyStart, busyEnd time.Time
		expected           bool
	}{
		{"busy starts inside slot", at(10, 0), at(10, 30), at(10, 15), at(10, 45), true},
		{"touching boundary is free", at(10, 0), at(10, 30), at(10, 30), at(11, 0), false},
		{"slot contains busy", at(10, 0), at(11, 0), at(10, 15), at(10, 45), true},
		{"disjoint before", at(10, 0), at(10, 30), at(9, 0), at(9, 30), false},
		{"busy contains slot", at(10, 0), at(10, 30), at(9, 0), at(11, 0), true},
		{"identical intervals", at(10, 0), at(10, 30), at(10, 0), at(10, 30), true},
		{"touching boundary before slot", at(10, 0), at(10, 30), at(9, 30), at(10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.slotStart, tt.slotEnd, tt.busyStart, tt.busyEnd))
		})
	}
}

func TestFilterBusy(t *testing.T) {
	loc := adminLoc(t)
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 13, 12, 0, 0, 0, loc)
	win := Window{StartHour: 20, EndHour: 24}
	candidates := GenerateSlots(day, 30, now, win, "Asia/Kolkata", "Asia/Kolkata")
	require.Len(t, candidates, 8)

	t.Run("empty busy list keeps every candidate", func(t *testing.T) {
		assert.Len(t, FilterBusy(candidates, nil), 8)
	})

	t.Run("busy covering full window removes everything", func(t *testing.T) {
		busy := []models.BusyInterval{{
			Start: time.Date(2026, 3, 14, 20, 0, 0, 0, loc),
			End:   time.Date(2026, 3, 15, 0, 0, 0, 0, loc),
		}}
		assert.Empty(t, FilterBusy(candidates, busy))
	})

	t.Run("single busy interval removes overlapped candidates only", func(t *testing.T) {
		busy := []models.BusyInterval{{
			Start: time.Date(2026, 3, 14, 21, 15, 0, 0, loc),
			End:   time.Date(2026, 3, 14, 21, 45, 0, 0, loc),
		}}
		available := FilterBusy(candidates, busy)
		require.Len(t, available, 6)
		for _, s := range available {
			assert.False(t, Overlaps(s.Start, s.End, busy[0].Start, busy[0].End))
		}
	})

	t.Run("unsorted overlapping busy intervals", func(t *testing.T) {
		busy := []models.BusyInterval{
			{Start: time.Date(2026, 3, 14, 23, 0, 0, 0, loc), End: time.Date(2026, 3, 14, 23, 30, 0, 0, loc)},
			{Start: time.Date(2026, 3, 14, 20, 0, 0, 0, loc), End: time.Date(2026, 3, 14, 21, 0, 0, 0, loc)},
			{Start: time.Date(2026, 3, 14, 20, 30, 0, 0, loc), End: time.Date(2026, 3, 14, 21, 0, 0, 0, loc)},
		}
		available := FilterBusy(candidates, busy)
		require.Len(t, available, 5)
		assert.True(t, available[0].Start.Equal(time.Date(2026, 3, 14, 21, 0, 0, 0, loc)))
	})
}
