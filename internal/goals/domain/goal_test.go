package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActiveGoal(t *testing.T, mode ProgressMode) *Goal {
	t.Helper()
	goal, err := NewGoal(uuid.New(), "Read more", mode)
	require.NoError(t, err)
	return goal
}

func TestNewGoal(t *testing.T) {
	goal := newActiveGoal(t, ModeSteps)

	assert.Equal(t, "Read more", goal.Name())
	assert.Equal(t, StatusActive, goal.Status())
	assert.True(t, goal.IsActive())
	assert.Len(t, goal.DomainEvents(), 1)
}

func TestNewGoal_Validation(t *testing.T) {
	_, err := NewGoal(uuid.New(), "  ", ModeSteps)
	assert.ErrorIs(t, err, ErrGoalEmptyName)

	_, err = NewGoal(uuid.New(), "Read", ProgressMode("velocity"))
	assert.ErrorIs(t, err, ErrGoalInvalidMode)
}

func TestGoal_Progress_Manual(t *testing.T) {
	goal := newActiveGoal(t, ModeManual)
	require.NoError(t, goal.SetManualProgress(42))

	assert.Equal(t, 42, goal.Progress(StepCounts{}))

	assert.ErrorIs(t, goal.SetManualProgress(101), ErrGoalInvalidProgress)
	assert.ErrorIs(t, goal.SetManualProgress(-1), ErrGoalInvalidProgress)
}

func TestGoal_Progress_Steps(t *testing.T) {
	goal := newActiveGoal(t, ModeSteps)

	assert.Equal(t, 0, goal.Progress(StepCounts{}), "no linked steps is zero, not an error")
	assert.Equal(t, 50, goal.Progress(StepCounts{Completed: 1, Total: 2}))
	assert.Equal(t, 67, goal.Progress(StepCounts{Completed: 2, Total: 3}))
	assert.Equal(t, 100, goal.Progress(StepCounts{Completed: 3, Total: 3}))
}

func TestGoal_Progress_Amount(t *testing.T) {
	goal := newActiveGoal(t, ModeAmount)
	metric, err := NewMetric("saved", 100, "EUR")
	require.NoError(t, err)
	require.NoError(t, goal.AddMetric(metric))

	metric.SetCurrent(150)
	assert.Equal(t, 100, goal.Progress(StepCounts{}), "overfilled metric clamps to 100")

	metric.SetCurrent(35)
	assert.Equal(t, 35, goal.Progress(StepCounts{}))
}

func TestGoal_Progress_AmountDegenerateTarget(t *testing.T) {
	goal := newActiveGoal(t, ModeAmount)
	metric, err := NewMetric("saved", 0, "EUR")
	require.NoError(t, err)
	metric.SetCurrent(500)
	require.NoError(t, goal.AddMetric(metric))

	assert.Equal(t, 0, goal.Progress(StepCounts{}))
}

func TestGoal_Progress_Combined(t *testing.T) {
	goal := newActiveGoal(t, ModeCombined)
	metric, err := NewMetric("pages", 100, "pages")
	require.NoError(t, err)
	metric.SetCurrent(40)
	require.NoError(t, goal.AddMetric(metric))

	// stepRatio 0.8, metric ratio 0.4 -> round(0.5*80 + 0.5*40) = 60.
	assert.Equal(t, 60, goal.Progress(StepCounts{Completed: 4, Total: 5}))
}

func TestGoal_Progress_CombinedWithoutMetrics(t *testing.T) {
	goal := newActiveGoal(t, ModeCombined)

	assert.Equal(t, 80, goal.Progress(StepCounts{Completed: 4, Total: 5}))
}

func TestGoal_Progress_CombinedAveragesMetrics(t *testing.T) {
	goal := newActiveGoal(t, ModeCombined)
	first, err := NewMetric("pages", 100, "pages")
	require.NoError(t, err)
	first.SetCurrent(100)
	second, err := NewMetric("notes", 10, "notes")
	require.NoError(t, err)
	second.SetCurrent(5)
	require.NoError(t, goal.AddMetric(first))
	require.NoError(t, goal.AddMetric(second))

	// avg metric ratio (1.0 + 0.5)/2 = 0.75, step ratio 0.5 -> 63.
	assert.Equal(t, 63, goal.Progress(StepCounts{Completed: 1, Total: 2}))
}

func TestGoal_Complete_FreezesProgress(t *testing.T) {
	goal := newActiveGoal(t, ModeSteps)
	require.NoError(t, goal.Complete(StepCounts{Completed: 3, Total: 4}))

	assert.Equal(t, StatusCompleted, goal.Status())
	pct, ok := goal.CompletedProgress()
	require.True(t, ok)
	assert.Equal(t, 75, pct)

	// Later step churn no longer moves the number.
	assert.Equal(t, 75, goal.Progress(StepCounts{Completed: 0, Total: 10}))

	assert.ErrorIs(t, goal.Complete(StepCounts{}), ErrGoalNotActive)
	assert.ErrorIs(t, goal.SetManualProgress(10), ErrGoalNotActive)
}

func TestGoal_Reopen(t *testing.T) {
	goal := newActiveGoal(t, ModeSteps)
	require.NoError(t, goal.Complete(StepCounts{Completed: 1, Total: 1}))

	goal.Reopen()

	assert.True(t, goal.IsActive())
	_, ok := goal.CompletedProgress()
	assert.False(t, ok)
	assert.Equal(t, 50, goal.Progress(StepCounts{Completed: 1, Total: 2}))
}

func TestGoal_Abandon(t *testing.T) {
	goal := newActiveGoal(t, ModeManual)
	require.NoError(t, goal.Abandon())

	assert.Equal(t, StatusAbandoned, goal.Status())
	_, ok := goal.CompletedProgress()
	assert.False(t, ok)
	assert.ErrorIs(t, goal.Abandon(), ErrGoalNotActive)
}

func TestGoal_RecordMetric(t *testing.T) {
	goal := newActiveGoal(t, ModeAmount)
	metric, err := NewMetric("saved", 200, "EUR")
	require.NoError(t, err)
	require.NoError(t, goal.AddMetric(metric))
	goal.ClearDomainEvents()

	require.NoError(t, goal.RecordMetric(metric.ID(), 50, StepCounts{}))

	assert.InDelta(t, 50.0, metric.Current(), 0.001)
	events := goal.DomainEvents()
	require.Len(t, events, 1)
	progress, ok := events[0].(*GoalProgressRecorded)
	require.True(t, ok)
	assert.Equal(t, 25, progress.Progress)

	assert.ErrorIs(t, goal.RecordMetric(uuid.New(), 1, StepCounts{}), ErrGoalUnknownMetric)
}

func TestGoal_RemoveMetric(t *testing.T) {
	goal := newActiveGoal(t, ModeAmount)
	metric, err := NewMetric("saved", 200, "EUR")
	require.NoError(t, err)
	require.NoError(t, goal.AddMetric(metric))

	require.NoError(t, goal.RemoveMetric(metric.ID()))
	assert.Empty(t, goal.Metrics())

	assert.ErrorIs(t, goal.RemoveMetric(metric.ID()), ErrGoalUnknownMetric)
}

func TestRehydrateGoal(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	pct := 88
	now := time.Now()
	metric := RehydrateMetric(uuid.New(), "saved", 10, 100, "EUR")

	goal := RehydrateGoal(id, userID, uuid.Nil, "Read more", ModeCombined, 0,
		StatusCompleted, &pct, now, now, []*Metric{metric})

	assert.Equal(t, id, goal.ID())
	assert.Equal(t, 88, goal.Progress(StepCounts{}))
	assert.Empty(t, goal.DomainEvents())
}
