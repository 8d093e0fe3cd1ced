package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reluam/pokrok.app-sub004/internal/goals/domain"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
)

// PostgresGoalRepository implements domain.Repository on Postgres.
type PostgresGoalRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresGoalRepository creates a new Postgres goal repository.
func NewPostgresGoalRepository(pool *pgxpool.Pool) *PostgresGoalRepository {
	return &PostgresGoalRepository{pool: pool}
}

// Save upserts a goal and synchronizes its metrics.
func (r *PostgresGoalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	exec := database.PgxExecutor(ctx, r.pool)

	var completed *int
	if pct, ok := goal.CompletedProgress(); ok {
		completed = &pct
	}
	var aspirationID *uuid.UUID
	if goal.AspirationID() != uuid.Nil {
		id := goal.AspirationID()
		aspirationID = &id
	}

	_, err := exec.Exec(ctx, `
		INSERT INTO goals (
			id, user_id, aspiration_id, name, progress_mode,
			manual_progress, status, completed_progress, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			aspiration_id = EXCLUDED.aspiration_id,
			name = EXCLUDED.name,
			progress_mode = EXCLUDED.progress_mode,
			manual_progress = EXCLUDED.manual_progress,
			status = EXCLUDED.status,
			completed_progress = EXCLUDED.completed_progress,
			updated_at = EXCLUDED.updated_at`,
		goal.ID(), goal.UserID(), aspirationID,
		goal.Name(), string(goal.Mode()),
		goal.ManualProgress(), string(goal.Status()), completed,
		goal.CreatedAt(), goal.UpdatedAt(),
	)
	if err != nil {
		return err
	}

	// Metrics are replaced wholesale; a goal holds at most a handful.
	if _, err := exec.Exec(ctx,
		`DELETE FROM goal_metrics WHERE goal_id = $1`, goal.ID()); err != nil {
		return err
	}
	for _, m := range goal.Metrics() {
		if _, err := exec.Exec(ctx, `
			INSERT INTO goal_metrics (id, goal_id, name, current_value, target_value, unit)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			m.ID(), goal.ID(), m.Name(),
			m.Current(), m.Target(), m.Unit()); err != nil {
			return err
		}
	}

	return nil
}

// FindByID retrieves a goal by its ID.
func (r *PostgresGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	goals, err := r.findWhere(ctx, `id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, domain.ErrGoalNotFound
	}
	return goals[0], nil
}

// FindByUserID retrieves all goals for a user.
func (r *PostgresGoalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	return r.findWhere(ctx, `user_id = $1`, userID)
}

// FindByAspiration retrieves all goals linked to an aspiration.
func (r *PostgresGoalRepository) FindByAspiration(ctx context.Context, aspirationID uuid.UUID) ([]*domain.Goal, error) {
	return r.findWhere(ctx, `aspiration_id = $1`, aspirationID)
}

// Delete removes a goal. Metrics go with it via CASCADE.
func (r *PostgresGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.PgxExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	return err
}

func (r *PostgresGoalRepository) findWhere(ctx context.Context, where string, args ...any) ([]*domain.Goal, error) {
	exec := database.PgxExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, `
		SELECT id, user_id, aspiration_id, name, progress_mode,
			manual_progress, status, completed_progress, created_at, updated_at
		FROM goals WHERE `+where+` ORDER BY created_at ASC`, args...)
	if err != nil {
		return nil, err
	}

	goals, err := collectGoals(rows)
	if err != nil {
		return nil, err
	}

	for i, g := range goals {
		metrics, err := r.loadMetrics(ctx, g.ID())
		if err != nil {
			return nil, err
		}
		goals[i] = withMetrics(g, metrics)
	}
	return goals, nil
}

func collectGoals(rows pgx.Rows) ([]*domain.Goal, error) {
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		var (
			id, userID           uuid.UUID
			aspirationID         *uuid.UUID
			name, mode, status   string
			manualProgress       int
			completedProgress    *int
			createdAt, updatedAt time.Time
		)

		err := rows.Scan(&id, &userID, &aspirationID, &name, &mode,
			&manualProgress, &status, &completedProgress, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}

		goals = append(goals, domain.RehydrateGoal(
			id, userID, derefUUID(aspirationID),
			name, domain.ProgressMode(mode), manualProgress,
			domain.GoalStatus(status), completedProgress,
			createdAt, updatedAt, nil,
		))
	}
	return goals, rows.Err()
}

func (r *PostgresGoalRepository) loadMetrics(ctx context.Context, goalID uuid.UUID) ([]*domain.Metric, error) {
	exec := database.PgxExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, `
		SELECT id, name, current_value, target_value, unit
		FROM goal_metrics WHERE goal_id = $1 ORDER BY id ASC`, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []*domain.Metric
	for rows.Next() {
		var (
			id              uuid.UUID
			name, unit      string
			current, target float64
		)
		if err := rows.Scan(&id, &name, &current, &target, &unit); err != nil {
			return nil, err
		}
		metrics = append(metrics, domain.RehydrateMetric(id, name, current, target, unit))
	}
	return metrics, rows.Err()
}

func derefUUID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
