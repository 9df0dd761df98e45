package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOf(t *testing.T) {
	d := DayOf(time.Date(2026, time.August, 19, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, Day("2026-08-19"), d)
}

func TestDay_Time(t *testing.T) {
	parsed, err := Day("2026-08-19").Time()
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.August, 19, 0, 0, 0, 0, time.UTC), parsed)

	_, err = Day("not-a-day").Time()
	assert.Error(t, err)
}

func TestDay_AddDays(t *testing.T) {
	assert.Equal(t, Day("2026-08-20"), Day("2026-08-19").AddDays(1))
	assert.Equal(t, Day("2026-08-12"), Day("2026-08-19").AddDays(-7))

	// Month and year boundaries
	assert.Equal(t, Day("2026-09-01"), Day("2026-08-31").AddDays(1))
	assert.Equal(t, Day("2027-01-01"), Day("2026-12-31").AddDays(1))

	// Malformed days pass through unchanged
	assert.Equal(t, Day("garbage"), Day("garbage").AddDays(3))
}

func TestWeekOf(t *testing.T) {
	// Wednesday mid-week
	from, to := WeekOf(time.Date(2026, time.August, 19, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, Day("2026-08-17"), from)
	assert.Equal(t, Day("2026-08-23"), to)

	// Monday is its own week start
	from, to = WeekOf(time.Date(2026, time.August, 17, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, Day("2026-08-17"), from)
	assert.Equal(t, Day("2026-08-23"), to)

	// Sunday still belongs to the week begun the previous Monday
	from, to = WeekOf(time.Date(2026, time.August, 23, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, Day("2026-08-17"), from)
	assert.Equal(t, Day("2026-08-23"), to)
}
