package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reluam/pokrok.app-sub004/internal/habits/domain"
	"github.com/reluam/pokrok.app-sub004/internal/recurrence"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

func newTestRepo(t *testing.T) *SQLiteHabitRepository {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "habits.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.MigrateSQLite(ctx, db))
	return NewSQLiteHabitRepository(db)
}

func testDay(t *testing.T, s string) dates.Day {
	t.Helper()
	d, err := dates.ParseDay(s)
	require.NoError(t, err)
	return d
}

func newTestHabit(t *testing.T, userID uuid.UUID, name string) *domain.Habit {
	t.Helper()
	rule, err := recurrence.NewRule(recurrence.KindDaily, nil, 0, testDay(t, "2025-01-01"))
	require.NoError(t, err)

	habit, err := domain.NewHabit(userID, name, rule, 0)
	require.NoError(t, err)
	return habit
}

func TestSQLiteHabitRepository_SaveAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	habit := newTestHabit(t, userID, "Morning run")
	require.NoError(t, habit.SetDescription("around the block"))
	require.NoError(t, habit.CompleteOn(testDay(t, "2025-06-09")))
	require.NoError(t, habit.CompleteOn(testDay(t, "2025-06-10")))

	require.NoError(t, repo.Save(ctx, habit))

	loaded, err := repo.FindByID(ctx, habit.ID())
	require.NoError(t, err)

	assert.Equal(t, habit.ID(), loaded.ID())
	assert.Equal(t, userID, loaded.UserID())
	assert.Equal(t, "Morning run", loaded.Name())
	assert.Equal(t, "around the block", loaded.Description())
	assert.Equal(t, recurrence.KindDaily, loaded.Rule().Kind())
	assert.Equal(t, 2, loaded.TotalDone())
	assert.Equal(t, 2, loaded.Streak())
	assert.True(t, loaded.IsCompletedOn(testDay(t, "2025-06-09")))
	assert.True(t, loaded.IsCompletedOn(testDay(t, "2025-06-10")))
	assert.False(t, loaded.IsCompletedOn(testDay(t, "2025-06-11")))
}

func TestSQLiteHabitRepository_FindByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
}

func TestSQLiteHabitRepository_UpdateSyncsCompletions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	habit := newTestHabit(t, uuid.New(), "Meditate")
	d := testDay(t, "2025-06-10")
	require.NoError(t, habit.CompleteOn(d))
	require.NoError(t, repo.Save(ctx, habit))

	require.NoError(t, habit.UncompleteOn(d))
	require.NoError(t, habit.SetName("Meditate 10min"))
	require.NoError(t, repo.Save(ctx, habit))

	loaded, err := repo.FindByID(ctx, habit.ID())
	require.NoError(t, err)
	assert.Equal(t, "Meditate 10min", loaded.Name())
	assert.False(t, loaded.IsCompletedOn(d))
	assert.Equal(t, 0, loaded.TotalDone())
}

func TestSQLiteHabitRepository_FindActiveByUserID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	active := newTestHabit(t, userID, "Active")
	archived := newTestHabit(t, userID, "Archived")
	archived.Archive()
	other := newTestHabit(t, uuid.New(), "Someone else")

	for _, h := range []*domain.Habit{active, archived, other} {
		require.NoError(t, repo.Save(ctx, h))
	}

	all, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := repo.FindActiveByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID(), got[0].ID())
}

func TestSQLiteHabitRepository_FindDueOn(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	daily := newTestHabit(t, userID, "Daily")

	mondayRule, err := recurrence.NewRule(recurrence.KindWeekly,
		recurrence.NewWeekdays(time.Monday), 0, testDay(t, "2025-01-06"))
	require.NoError(t, err)
	mondays, err := domain.NewHabit(userID, "Weekly review", mondayRule, 0)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, daily))
	require.NoError(t, repo.Save(ctx, mondays))

	tuesday := testDay(t, "2025-06-03")
	due, err := repo.FindDueOn(ctx, userID, tuesday)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, daily.ID(), due[0].ID())

	monday := testDay(t, "2025-06-02")
	due, err = repo.FindDueOn(ctx, userID, monday)
	require.NoError(t, err)
	assert.Len(t, due, 2)
}

func TestSQLiteHabitRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	habit := newTestHabit(t, uuid.New(), "Short lived")
	require.NoError(t, habit.CompleteOn(testDay(t, "2025-06-10")))
	require.NoError(t, repo.Save(ctx, habit))

	require.NoError(t, repo.Delete(ctx, habit.ID()))

	_, err := repo.FindByID(ctx, habit.ID())
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
}
