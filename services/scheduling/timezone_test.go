package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	loc := adminLoc(t)

	day, err := ParseDay("2026-03-14", loc)
	require.NoError(t, err)
	assert.Equal(t, 2026, day.Year())
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 14, day.Day())
	assert.Equal(t, loc, day.Location())

	_, err = ParseDay("14-03-2026", loc)
	assert.Error(t, err)

	_, err = ParseDay("2026-02-30", loc)
	assert.Error(t, err)
}

func TestComposeHalfHourOffset(t *testing.T) {
	loc := adminLoc(t)
	day, err := ParseDay("2026-03-14", loc)
	require.NoError(t, err)

	eightPM := Compose(day, 20)
	assert.Equal(t, "2026-03-14T20:00:00+05:30", eightPM.Format(time.RFC3339))
	assert.Equal(t, "2026-03-14T14:30:00Z", eightPM.UTC().Format(time.RFC3339))

	// Hour 24 rolls into the next day's midnight.
	midnight := Compose(day, 24)
	assert.Equal(t, "2026-03-15T00:00:00+05:30", midnight.Format(time.RFC3339))
}

func TestDayBounds(t *testing.T) {
	loc := adminLoc(t)
	day, err := ParseDay("2026-03-14", loc)
	require.NoError(t, err)

	start, end := DayBounds(day)
	assert.Equal(t, "2026-03-14T00:00:00+05:30", start.Format(time.RFC3339))
	assert.Equal(t, "2026-03-14T23:59:59+05:30", end.Format(time.RFC3339))
}

func TestLoadZoneFallback(t *testing.T) {
	loc := LoadZone("Not/AZone", "Asia/Kolkata")
	assert.Equal(t, "Asia/Kolkata", loc.String())

	loc = LoadZone("Europe/Berlin", "Asia/Kolkata")
	assert.Equal(t, "Europe/Berlin", loc.String())
}
