package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reluam/pokrok.app-sub004/internal/recurrence"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

func day(t *testing.T, year int, month time.Month, dom int) dates.Day {
	t.Helper()
	d, err := dates.NewDay(year, month, dom)
	require.NoError(t, err)
	return d
}

func dailyRule(t *testing.T) recurrence.Rule {
	t.Helper()
	rule, err := recurrence.NewRule(recurrence.KindDaily, nil, 0, day(t, 2025, time.January, 1))
	require.NoError(t, err)
	return rule
}

func TestNewHabit(t *testing.T) {
	userID := uuid.New()

	habit, err := NewHabit(userID, "Morning run", dailyRule(t), 0)
	require.NoError(t, err)

	assert.Equal(t, userID, habit.UserID())
	assert.Equal(t, "Morning run", habit.Name())
	assert.Equal(t, DefaultXPPerCompletion, habit.XPPerCompletion())
	assert.Equal(t, 0, habit.Streak())
	assert.False(t, habit.IsArchived())
	assert.Len(t, habit.DomainEvents(), 1)
	assert.IsType(t, &HabitCreated{}, habit.DomainEvents()[0])
}

func TestNewHabit_Validation(t *testing.T) {
	_, err := NewHabit(uuid.New(), "   ", dailyRule(t), 0)
	assert.ErrorIs(t, err, ErrHabitEmptyName)

	_, err = NewHabit(uuid.New(), "Read", dailyRule(t), -5)
	assert.ErrorIs(t, err, ErrHabitInvalidXP)
}

func TestHabit_CompleteOn(t *testing.T) {
	habit, err := NewHabit(uuid.New(), "Meditate", dailyRule(t), 25)
	require.NoError(t, err)

	d := day(t, 2025, time.June, 10)

	require.NoError(t, habit.CompleteOn(d))
	assert.True(t, habit.IsCompletedOn(d))
	assert.Equal(t, 1, habit.TotalDone())
	assert.Equal(t, 1, habit.Streak())
	assert.Equal(t, 25, habit.TotalXP())

	// Same day twice is rejected.
	assert.ErrorIs(t, habit.CompleteOn(d), ErrHabitAlreadyDone)
	assert.Equal(t, 1, habit.TotalDone())
}

func TestHabit_UncompleteOn(t *testing.T) {
	habit, err := NewHabit(uuid.New(), "Meditate", dailyRule(t), 0)
	require.NoError(t, err)

	d := day(t, 2025, time.June, 10)
	assert.ErrorIs(t, habit.UncompleteOn(d), ErrHabitNotDone)

	require.NoError(t, habit.CompleteOn(d))
	require.NoError(t, habit.UncompleteOn(d))

	assert.False(t, habit.IsCompletedOn(d))
	assert.Equal(t, 0, habit.TotalDone())
	assert.Equal(t, 0, habit.Streak())
}

func TestHabit_StreakDaily(t *testing.T) {
	habit, err := NewHabit(uuid.New(), "Journal", dailyRule(t), 0)
	require.NoError(t, err)

	d := day(t, 2025, time.March, 1)
	for i := 0; i < 5; i++ {
		require.NoError(t, habit.CompleteOn(d.AddDays(i)))
	}
	assert.Equal(t, 5, habit.Streak())
	assert.Equal(t, 5, habit.BestStreak())

	// A gap breaks the streak but keeps the best.
	require.NoError(t, habit.CompleteOn(d.AddDays(7)))
	assert.Equal(t, 1, habit.Streak())
	assert.Equal(t, 5, habit.BestStreak())
}

func TestHabit_StreakSkipsNonDueDays(t *testing.T) {
	anchor := day(t, 2025, time.January, 6) // a Monday
	rule, err := recurrence.NewRule(recurrence.KindCustom,
		recurrence.NewWeekdays(time.Monday, time.Wednesday), 0, anchor)
	require.NoError(t, err)

	habit, err := NewHabit(uuid.New(), "Gym", rule, 0)
	require.NoError(t, err)

	mon := day(t, 2025, time.June, 2)
	wed := mon.AddDays(2)
	nextMon := mon.AddDays(7)

	require.NoError(t, habit.CompleteOn(mon))
	require.NoError(t, habit.CompleteOn(wed))
	require.NoError(t, habit.CompleteOn(nextMon))

	// Thu-Sun are not due days and must not break the run.
	assert.Equal(t, 3, habit.Streak())
}

func TestHabit_Archive(t *testing.T) {
	habit, err := NewHabit(uuid.New(), "Stretch", dailyRule(t), 0)
	require.NoError(t, err)

	habit.Archive()
	assert.True(t, habit.IsArchived())
	assert.False(t, habit.IsDueOn(day(t, 2025, time.June, 10)))

	assert.ErrorIs(t, habit.CompleteOn(day(t, 2025, time.June, 10)), ErrHabitArchived)
	assert.ErrorIs(t, habit.SetName("x"), ErrHabitArchived)

	habit.Unarchive()
	assert.False(t, habit.IsArchived())
	assert.True(t, habit.IsDueOn(day(t, 2025, time.June, 10)))
}

func TestHabit_IsDueOn_AlwaysShow(t *testing.T) {
	anchor := day(t, 2025, time.January, 6)
	rule, err := recurrence.NewRule(recurrence.KindWeekly,
		recurrence.NewWeekdays(time.Monday), 0, anchor)
	require.NoError(t, err)

	habit, err := NewHabit(uuid.New(), "Review week", rule, 0)
	require.NoError(t, err)

	tuesday := day(t, 2025, time.June, 3)
	assert.False(t, habit.IsDueOn(tuesday))

	habit.SetAlwaysShow(true)
	assert.True(t, habit.IsDueOn(tuesday))
}

func TestHabit_CompletionRate(t *testing.T) {
	habit, err := NewHabit(uuid.New(), "Read", dailyRule(t), 0)
	require.NoError(t, err)

	end := day(t, 2025, time.May, 10)
	for i := 0; i < 5; i++ {
		require.NoError(t, habit.CompleteOn(end.AddDays(-i)))
	}

	assert.InDelta(t, 50.0, habit.CompletionRate(end, 10), 0.001)
	assert.Equal(t, 0.0, habit.CompletionRate(end, 0))
}

func TestHabit_SetRuleEmitsEvent(t *testing.T) {
	habit, err := NewHabit(uuid.New(), "Walk", dailyRule(t), 0)
	require.NoError(t, err)
	habit.ClearDomainEvents()

	weekly, err := recurrence.NewRule(recurrence.KindWeekly,
		recurrence.NewWeekdays(time.Saturday), 0, day(t, 2025, time.January, 4))
	require.NoError(t, err)

	require.NoError(t, habit.SetRule(weekly))
	require.Len(t, habit.DomainEvents(), 1)
	assert.IsType(t, &HabitRuleChanged{}, habit.DomainEvents()[0])

	// Setting the identical rule again emits nothing.
	habit.ClearDomainEvents()
	require.NoError(t, habit.SetRule(weekly))
	assert.Empty(t, habit.DomainEvents())
}

func TestRehydrateHabit(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	created := time.Now().Add(-48 * time.Hour)
	updated := time.Now()
	d1 := day(t, 2025, time.April, 1)
	d2 := day(t, 2025, time.April, 2)

	habit := RehydrateHabit(id, userID, uuid.Nil, "Water plants", "",
		dailyRule(t), false, 15, 2, 4, 9, false, created, updated,
		[]dates.Day{d1, d2})

	assert.Equal(t, id, habit.ID())
	assert.Equal(t, 2, habit.Streak())
	assert.Equal(t, 4, habit.BestStreak())
	assert.Equal(t, 9, habit.TotalDone())
	assert.True(t, habit.IsCompletedOn(d1))
	assert.True(t, habit.IsCompletedOn(d2))
	assert.Empty(t, habit.DomainEvents())
}
