package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDay(t *testing.T) {
	d, err := NewDay(2025, time.March, 15)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", d.String())
	assert.Equal(t, 15, d.DayOfMonth())
	assert.Equal(t, time.Saturday, d.Weekday())
}

func TestNewDay_InvalidDates(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
	}{
		{"day zero", 2025, time.January, 0},
		{"day 32", 2025, time.January, 32},
		{"feb 30", 2025, time.February, 30},
		{"feb 29 non-leap", 2025, time.February, 29},
		{"april 31", 2025, time.April, 31},
		{"month 13", 2025, time.Month(13), 1},
		{"month zero", 2025, time.Month(0), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDay(tc.year, tc.month, tc.day)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestNewDay_LeapYear(t *testing.T) {
	d, err := NewDay(2024, time.February, 29)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())
}

func TestDayOf_StripsTimeComponent(t *testing.T) {
	morning := time.Date(2025, time.June, 10, 6, 30, 0, 0, time.Local)
	evening := time.Date(2025, time.June, 10, 23, 59, 59, 0, time.Local)

	assert.True(t, DayOf(morning).Equal(DayOf(evening)))
	assert.Equal(t, DayOf(morning).Time(), DayOf(evening).Time())
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, 31, d.DayOfMonth())
	assert.Equal(t, time.December, d.Month())

	_, err = ParseDay("not-a-date")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDay("2025-13-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDaysBetween(t *testing.T) {
	a, _ := NewDay(2025, time.March, 1)
	b, _ := NewDay(2025, time.March, 4)

	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, -3, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDaysBetween_AcrossMonthAndYear(t *testing.T) {
	a, _ := NewDay(2024, time.December, 30)
	b, _ := NewDay(2025, time.January, 2)
	assert.Equal(t, 3, DaysBetween(a, b))

	// Across Feb 29 in a leap year.
	c, _ := NewDay(2024, time.February, 28)
	d, _ := NewDay(2024, time.March, 1)
	assert.Equal(t, 2, DaysBetween(c, d))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, time.June, 10, 0, 0, 1, 0, time.Local)
	b := time.Date(2025, time.June, 10, 23, 0, 0, 0, time.Local)
	c := time.Date(2025, time.June, 11, 0, 0, 0, 0, time.Local)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, c))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2025, time.January))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 30, DaysInMonth(2025, time.April))
}

func TestAddDays(t *testing.T) {
	d, _ := NewDay(2025, time.January, 31)
	assert.Equal(t, "2025-02-01", d.AddDays(1).String())
	assert.Equal(t, "2025-01-30", d.AddDays(-1).String())
}

func TestLastDayOfMonth(t *testing.T) {
	feb28, _ := NewDay(2025, time.February, 28)
	feb29, _ := NewDay(2024, time.February, 29)
	feb28Leap, _ := NewDay(2024, time.February, 28)

	assert.True(t, feb28.LastDayOfMonth())
	assert.True(t, feb29.LastDayOfMonth())
	assert.False(t, feb28Leap.LastDayOfMonth())
}
