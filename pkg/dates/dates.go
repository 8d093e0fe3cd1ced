// Package dates provides civil-date arithmetic for the planning core.
// All comparisons operate on local calendar days with the time component
// stripped to midnight, so two timestamps on the same local day are equal.
package dates

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate indicates a malformed or out-of-range calendar input.
var ErrInvalidDate = errors.New("invalid calendar date")

// Day is a calendar date normalized to local midnight.
type Day struct {
	t time.Time
}

// NewDay builds a Day from year, month and day-of-month components.
// Inputs that do not name a real calendar date (e.g. Feb 30) are rejected.
func NewDay(year int, month time.Month, day int) (Day, error) {
	if month < time.January || month > time.December {
		return Day{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Day{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}, nil
}

// DayOf truncates a timestamp to its local calendar day.
func DayOf(t time.Time) Day {
	y, m, d := t.Local().Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
}

// Today returns the current local calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses a YYYY-MM-DD string into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DayOf(t), nil
}

// Time returns the local-midnight timestamp of the day.
func (d Day) Time() time.Time { return d.t }

// IsZero reports whether the day is the zero value.
func (d Day) IsZero() bool { return d.t.IsZero() }

// String formats the day as YYYY-MM-DD.
func (d Day) String() string { return d.t.Format("2006-01-02") }

// Weekday returns the day of week.
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }

// DayOfMonth returns the day-of-month component, 1..31.
func (d Day) DayOfMonth() int { return d.t.Day() }

// Month returns the month component.
func (d Day) Month() time.Month { return d.t.Month() }

// Year returns the year component.
func (d Day) Year() int { return d.t.Year() }

// AddDays returns the day shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return DayOf(d.t.AddDate(0, 0, n))
}

// Before reports whether d is strictly before other.
func (d Day) Before(other Day) bool { return d.t.Before(other.t) }

// After reports whether d is strictly after other.
func (d Day) After(other Day) bool { return d.t.After(other.t) }

// Equal reports whether two days are the same calendar date.
func (d Day) Equal(other Day) bool {
	return SameDay(d.t, other.t)
}

// DaysBetween returns b minus a in whole days, signed.
func DaysBetween(a, b Day) int {
	// Divide on UTC-normalized midnights so DST transitions cannot
	// produce a fractional day.
	ua := time.Date(a.Year(), a.Month(), a.DayOfMonth(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.DayOfMonth(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}

// WeekdayOf returns the day of week of a timestamp's local calendar day.
func WeekdayOf(t time.Time) time.Weekday {
	return DayOf(t).Weekday()
}

// SameDay reports whether two timestamps fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// DaysInMonth returns the number of days in a month, accounting for leap years.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LastDayOfMonth reports whether the day is the last day of its month.
func (d Day) LastDayOfMonth() bool {
	return d.DayOfMonth() == DaysInMonth(d.Year(), d.Month())
}
