package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

func mustDay(t *testing.T, year int, month time.Month, day int) dates.Day {
	t.Helper()
	d, err := dates.NewDay(year, month, day)
	require.NoError(t, err)
	return d
}

func TestNewRule_Daily(t *testing.T) {
	anchor := mustDay(t, 2025, time.January, 10)
	rule, err := NewRule(KindDaily, nil, 0, anchor)

	require.NoError(t, err)
	assert.Equal(t, KindDaily, rule.Kind())
	assert.Equal(t, anchor, rule.Anchor())
}

func TestNewRule_UnknownKind(t *testing.T) {
	anchor := mustDay(t, 2025, time.January, 10)
	_, err := NewRule(Kind("fortnightly"), nil, 0, anchor)
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestNewRule_WeeklyNeedsWeekdays(t *testing.T) {
	anchor := mustDay(t, 2025, time.January, 10)

	_, err := NewRule(KindWeekly, nil, 0, anchor)
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewRule(KindCustom, Weekdays{}, 0, anchor)
	assert.ErrorIs(t, err, ErrInvalidRule)

	rule, err := NewRule(KindWeekly, NewWeekdays(time.Monday, time.Friday), 0, anchor)
	require.NoError(t, err)
	assert.True(t, rule.Weekdays().Contains(time.Monday))
	assert.False(t, rule.Weekdays().Contains(time.Tuesday))
}

func TestNewRule_MonthlyValidation(t *testing.T) {
	anchor := mustDay(t, 2025, time.January, 10)

	_, err := NewRule(KindMonthly, nil, 32, anchor)
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewRule(KindMonthly, nil, -1, anchor)
	assert.ErrorIs(t, err, ErrInvalidRule)

	// Zero falls back to the anchor's day of month.
	rule, err := NewRule(KindMonthly, nil, 0, anchor)
	require.NoError(t, err)
	assert.Equal(t, 10, rule.DayOfMonth())
}

func TestNewRule_RequiresAnchor(t *testing.T) {
	_, err := NewRule(KindDaily, nil, 0, dates.Day{})
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestRehydrateRule_AcceptsHistoricalRows(t *testing.T) {
	anchor := mustDay(t, 2020, time.June, 1)

	// No validation: empty weekday sets and unknown kinds load fine.
	rule := RehydrateRule(KindWeekly, nil, 0, anchor)
	assert.Equal(t, KindWeekly, rule.Kind())
	assert.Empty(t, rule.Weekdays())

	rule = RehydrateRule(Kind("legacy"), nil, 0, anchor)
	assert.Equal(t, Kind("legacy"), rule.Kind())
}

func TestWeekdays_Normalization(t *testing.T) {
	w := NewWeekdays(time.Friday, time.Monday, time.Friday, time.Wednesday)
	assert.Equal(t, Weekdays{time.Monday, time.Wednesday, time.Friday}, w)
	assert.Equal(t, "mon,wed,fri", w.String())
}

func TestParseWeekdays(t *testing.T) {
	w, err := ParseWeekdays("mon,wed,fri")
	require.NoError(t, err)
	assert.Equal(t, NewWeekdays(time.Monday, time.Wednesday, time.Friday), w)

	w, err = ParseWeekdays("Saturday, Sunday")
	require.NoError(t, err)
	assert.Equal(t, NewWeekdays(time.Saturday, time.Sunday), w)

	w, err = ParseWeekdays("")
	require.NoError(t, err)
	assert.Empty(t, w)

	_, err = ParseWeekdays("mon,noday")
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestWeekdays_RoundTrip(t *testing.T) {
	original := NewWeekdays(time.Sunday, time.Tuesday, time.Saturday)
	parsed, err := ParseWeekdays(original.String())
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}
