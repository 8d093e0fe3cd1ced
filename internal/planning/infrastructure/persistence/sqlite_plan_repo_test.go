package persistence

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "planning.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.MigrateSQLite(ctx, db))
	return db
}

func testDay(t *testing.T, s string) dates.Day {
	t.Helper()
	d, err := dates.ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestSQLitePlanRepository_SaveAndFind(t *testing.T) {
	repo := NewSQLitePlanRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	d := testDay(t, "2025-06-10")

	plan, err := domain.NewDailyPlan(userID, d)
	require.NoError(t, err)

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	for _, id := range []uuid.UUID{a, b, c} {
		require.NoError(t, plan.Add(id, d))
	}
	require.NoError(t, repo.Save(ctx, plan))

	loaded, err := repo.FindByUserAndDay(ctx, userID, d)
	require.NoError(t, err)
	assert.Equal(t, plan.ID(), loaded.ID())
	assert.Equal(t, []uuid.UUID{a, b, c}, loaded.Items())

	// Order survives a reorder round trip.
	require.NoError(t, loaded.Reorder([]uuid.UUID{c, a, b}, d))
	require.NoError(t, repo.Save(ctx, loaded))

	again, err := repo.FindByID(ctx, plan.ID())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c, a, b}, again.Items())
}

func TestSQLitePlanRepository_NotFound(t *testing.T) {
	repo := NewSQLitePlanRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByUserAndDay(ctx, uuid.New(), testDay(t, "2025-06-10"))
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestSQLitePlanRepository_EmptyPlanPersists(t *testing.T) {
	repo := NewSQLitePlanRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	d := testDay(t, "2025-06-10")

	plan, err := domain.NewDailyPlan(userID, d)
	require.NoError(t, err)
	itemID := uuid.New()
	require.NoError(t, plan.Add(itemID, d))
	require.NoError(t, repo.Save(ctx, plan))

	require.NoError(t, plan.Remove(itemID, d))
	require.NoError(t, repo.Save(ctx, plan))

	loaded, err := repo.FindByUserAndDay(ctx, userID, d)
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestSQLitePlanRepository_FindByUserBetween(t *testing.T) {
	repo := NewSQLitePlanRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	for _, s := range []string{"2025-06-08", "2025-06-10", "2025-06-12"} {
		plan, err := domain.NewDailyPlan(userID, testDay(t, s))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, plan))
	}

	plans, err := repo.FindByUserBetween(ctx, userID,
		testDay(t, "2025-06-09"), testDay(t, "2025-06-12"))
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "2025-06-10", plans[0].Day().String())
	assert.Equal(t, "2025-06-12", plans[1].Day().String())
}
