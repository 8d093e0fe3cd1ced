package recurrence

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_AlwaysShowWins(t *testing.T) {
	e := NewEvaluator(nil)
	anchor := mustDay(t, 2025, time.January, 1)

	// Even a never-due rule is overridden by the always-show flag.
	rule := RehydrateRule(KindWeekly, nil, 0, anchor)
	day := mustDay(t, 2025, time.March, 4)

	assert.True(t, e.IsDue(uuid.New(), rule, true, day))
	assert.False(t, e.IsDue(uuid.New(), rule, false, day))
}

func TestEvaluator_Daily(t *testing.T) {
	e := NewEvaluator(nil)
	rule, err := NewRule(KindDaily, nil, 0, mustDay(t, 2025, time.January, 1))
	require.NoError(t, err)

	day := mustDay(t, 2025, time.January, 1)
	for i := 0; i < 14; i++ {
		assert.True(t, e.IsDue(uuid.New(), rule, false, day), day.String())
		day = day.AddDays(1)
	}
}

func TestEvaluator_CustomWeekdays(t *testing.T) {
	e := NewEvaluator(nil)
	rule, err := NewRule(KindCustom, NewWeekdays(time.Monday, time.Wednesday, time.Friday), 0,
		mustDay(t, 2025, time.January, 1))
	require.NoError(t, err)

	tuesday := mustDay(t, 2025, time.June, 3)
	require.Equal(t, time.Tuesday, tuesday.Weekday())
	assert.False(t, e.IsDue(uuid.New(), rule, false, tuesday))

	friday := mustDay(t, 2025, time.June, 6)
	require.Equal(t, time.Friday, friday.Weekday())
	assert.True(t, e.IsDue(uuid.New(), rule, false, friday))
}

func TestEvaluator_WeeklyEmptySet_NeverDue(t *testing.T) {
	e := NewEvaluator(nil)
	rule := RehydrateRule(KindWeekly, nil, 0, mustDay(t, 2025, time.January, 1))

	day := mustDay(t, 2025, time.January, 1)
	for i := 0; i < 365; i++ {
		assert.False(t, e.IsDue(uuid.New(), rule, false, day), day.String())
		day = day.AddDays(1)
	}
}

func TestEvaluator_Monthly(t *testing.T) {
	e := NewEvaluator(nil)
	rule, err := NewRule(KindMonthly, nil, 15, mustDay(t, 2025, time.January, 15))
	require.NoError(t, err)

	assert.True(t, e.IsDue(uuid.New(), rule, false, mustDay(t, 2025, time.February, 15)))
	assert.False(t, e.IsDue(uuid.New(), rule, false, mustDay(t, 2025, time.February, 14)))
	assert.False(t, e.IsDue(uuid.New(), rule, false, mustDay(t, 2025, time.February, 16)))
}

func TestEvaluator_MonthlyOverflow(t *testing.T) {
	e := NewEvaluator(nil)
	rule, err := NewRule(KindMonthly, nil, 31, mustDay(t, 2025, time.January, 31))
	require.NoError(t, err)

	owner := uuid.New()

	// Non-leap February: due on the 28th, nothing before.
	assert.True(t, e.IsDue(owner, rule, false, mustDay(t, 2025, time.February, 28)))
	assert.False(t, e.IsDue(owner, rule, false, mustDay(t, 2025, time.February, 27)))

	// Leap February: due on the 29th only.
	assert.True(t, e.IsDue(owner, rule, false, mustDay(t, 2024, time.February, 29)))
	assert.False(t, e.IsDue(owner, rule, false, mustDay(t, 2024, time.February, 28)))

	// 30-day months: due on the 30th.
	assert.True(t, e.IsDue(owner, rule, false, mustDay(t, 2025, time.April, 30)))
	assert.False(t, e.IsDue(owner, rule, false, mustDay(t, 2025, time.April, 29)))

	// 31-day months: due on the 31st, not the 30th.
	assert.True(t, e.IsDue(owner, rule, false, mustDay(t, 2025, time.March, 31)))
	assert.False(t, e.IsDue(owner, rule, false, mustDay(t, 2025, time.March, 30)))
}

func TestEvaluator_MonthlyAnchorFallback(t *testing.T) {
	e := NewEvaluator(nil)
	// Historical row without an explicit day of month.
	rule := RehydrateRule(KindMonthly, nil, 0, mustDay(t, 2024, time.November, 12))

	assert.True(t, e.IsDue(uuid.New(), rule, false, mustDay(t, 2025, time.March, 12)))
	assert.False(t, e.IsDue(uuid.New(), rule, false, mustDay(t, 2025, time.March, 13)))
}

func TestEvaluator_AlwaysKind(t *testing.T) {
	e := NewEvaluator(nil)
	rule, err := NewRule(KindAlways, nil, 0, mustDay(t, 2025, time.January, 1))
	require.NoError(t, err)

	assert.True(t, e.IsDue(uuid.New(), rule, false, mustDay(t, 2025, time.July, 19)))
}

func TestEvaluator_NoneKind(t *testing.T) {
	e := NewEvaluator(nil)
	rule, err := NewRule(KindNone, nil, 0, mustDay(t, 2025, time.January, 1))
	require.NoError(t, err)

	assert.False(t, e.IsDue(uuid.New(), rule, false, mustDay(t, 2025, time.July, 19)))
}

func TestEvaluator_UnknownKind_FailsOpenAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	e := NewEvaluator(logger)

	owner := uuid.New()
	rule := RehydrateRule(Kind("legacy"), nil, 0, mustDay(t, 2020, time.May, 5))

	assert.True(t, e.IsDue(owner, rule, false, mustDay(t, 2025, time.May, 5)))

	out := buf.String()
	assert.Contains(t, out, "unknown recurrence kind")
	assert.Contains(t, out, owner.String())
	assert.Contains(t, out, "legacy")
}
