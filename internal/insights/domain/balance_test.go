package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reluam/pokrok.app-sub004/pkg/config"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

func day(t *testing.T, s string) dates.Day {
	t.Helper()
	d, err := dates.ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestComputeBalance_EmptyVsZero(t *testing.T) {
	today := day(t, "2025-06-10")
	thresholds := config.DefaultInsightThresholds()

	empty := ComputeBalance(uuid.New(), nil, nil, today, thresholds)
	assert.True(t, empty.Empty)
	assert.False(t, empty.HasSignal())

	// One linked step, never completed: zero performance, not empty.
	zero := ComputeBalance(uuid.New(), nil, []StepActivity{
		{StepID: uuid.New(), Day: today, XP: 10},
	}, today, thresholds)
	assert.False(t, zero.Empty)
	require.True(t, zero.HasSignal())
	assert.InDelta(t, 0.0, *zero.CompletionRateRecent, 0.001)
}

func TestComputeBalance_NoSignalOutsideWindow(t *testing.T) {
	today := day(t, "2025-06-10")
	thresholds := config.DefaultInsightThresholds()

	// Everything planned long before the 90-day window.
	balance := ComputeBalance(uuid.New(), nil, []StepActivity{
		{StepID: uuid.New(), Day: day(t, "2024-01-05"), Completed: true, XP: 10},
	}, today, thresholds)

	assert.False(t, balance.Empty)
	assert.False(t, balance.HasSignal(), "old activity carries no recent signal")
	assert.Equal(t, 10, balance.TotalXP)
	assert.Equal(t, 0, balance.RecentXP)
}

func TestComputeBalance_CompletionRate(t *testing.T) {
	today := day(t, "2025-06-10")
	thresholds := config.DefaultInsightThresholds()

	habit := HabitActivity{
		HabitID:         uuid.New(),
		XPPerCompletion: 10,
		TotalDone:       2,
		Completions:     []dates.Day{day(t, "2025-06-08"), day(t, "2025-06-09")},
		RecentDue:       4,
	}
	steps := []StepActivity{
		{StepID: uuid.New(), Day: day(t, "2025-06-07"), Completed: true, XP: 10},
		{StepID: uuid.New(), Day: day(t, "2025-06-08"), Completed: false, XP: 10},
	}

	balance := ComputeBalance(uuid.New(), []HabitActivity{habit}, steps, today, thresholds)

	// 2 habit days + 1 step done, of 4 habit due days + 2 planned steps.
	require.True(t, balance.HasSignal())
	assert.InDelta(t, 50.0, *balance.CompletionRateRecent, 0.001)
	assert.Equal(t, 30, balance.TotalXP)
	assert.Equal(t, 30, balance.RecentXP)
	assert.Equal(t, 1, balance.TotalPlannedHabits)
	assert.Equal(t, 2, balance.TotalPlannedSteps)
}

func TestComputeBalance_Trend(t *testing.T) {
	today := day(t, "2025-06-10")
	thresholds := config.DefaultInsightThresholds()

	// A year of history with all completions long ago: recent rate is zero.
	fading := HabitActivity{
		HabitID:         uuid.New(),
		XPPerCompletion: 10,
		TotalDone:       50,
		Completions:     manyDays(t, "2024-06-15", 50),
		RecentDue:       90,
	}
	balance := ComputeBalance(uuid.New(), []HabitActivity{fading}, nil, today, thresholds)
	assert.Equal(t, TrendNegative, balance.Trend)

	// All completions inside the window: recent rate beats lifetime.
	surging := HabitActivity{
		HabitID:         uuid.New(),
		XPPerCompletion: 10,
		TotalDone:       30,
		Completions:     manyDays(t, "2025-05-01", 30),
		RecentDue:       40,
	}
	// An old unfinished step stretches the lifetime span back a year.
	oldStep := StepActivity{StepID: uuid.New(), Day: day(t, "2024-06-15")}
	balance = ComputeBalance(uuid.New(), []HabitActivity{surging}, []StepActivity{oldStep}, today, thresholds)
	assert.Equal(t, TrendPositive, balance.Trend)
}

func TestComputeBalance_YoungHistoryIsNeutral(t *testing.T) {
	today := day(t, "2025-06-10")
	thresholds := config.DefaultInsightThresholds()

	// Ten days of history, all inside the window: recent == lifetime.
	young := HabitActivity{
		HabitID:         uuid.New(),
		XPPerCompletion: 10,
		TotalDone:       10,
		Completions:     manyDays(t, "2025-06-01", 10),
		RecentDue:       10,
	}
	balance := ComputeBalance(uuid.New(), []HabitActivity{young}, nil, today, thresholds)
	assert.Equal(t, TrendNeutral, balance.Trend)
}

func TestGroupEasyAndHard(t *testing.T) {
	thresholds := config.DefaultInsightThresholds()
	rate := func(v float64) *float64 { return &v }

	easy := AspirationBalance{AspirationID: uuid.New(), CompletionRateRecent: rate(85)}
	hard := AspirationBalance{AspirationID: uuid.New(), CompletionRateRecent: rate(20)}
	mid := AspirationBalance{AspirationID: uuid.New(), CompletionRateRecent: rate(55)}
	silent := AspirationBalance{AspirationID: uuid.New()}
	all := []AspirationBalance{easy, hard, mid, silent}

	gotEasy := GroupEasy(all, thresholds)
	require.Len(t, gotEasy, 1)
	assert.Equal(t, easy.AspirationID, gotEasy[0].AspirationID)

	gotHard := GroupHard(all, thresholds)
	require.Len(t, gotHard, 1)
	assert.Equal(t, hard.AspirationID, gotHard[0].AspirationID)
}

// manyDays returns n consecutive days starting at the given day.
func manyDays(t *testing.T, start string, n int) []dates.Day {
	t.Helper()
	d := day(t, start)
	out := make([]dates.Day, n)
	for i := range out {
		out[i] = d.AddDays(i)
	}
	return out
}
