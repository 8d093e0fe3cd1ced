package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// PostgresStepRepository implements domain.StepRepository on Postgres.
type PostgresStepRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresStepRepository creates a new Postgres step repository.
func NewPostgresStepRepository(pool *pgxpool.Pool) *PostgresStepRepository {
	return &PostgresStepRepository{pool: pool}
}

// Save upserts a step.
func (r *PostgresStepRepository) Save(ctx context.Context, step *domain.DailyStep) error {
	exec := database.PgxExecutor(ctx, r.pool)

	var goalID *uuid.UUID
	if step.GoalID() != uuid.Nil {
		id := step.GoalID()
		goalID = &id
	}

	_, err := exec.Exec(ctx, `
		INSERT INTO daily_steps (
			id, user_id, goal_id, title, day, completed, completed_at,
			important, urgent, xp, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			goal_id = EXCLUDED.goal_id,
			title = EXCLUDED.title,
			day = EXCLUDED.day,
			completed = EXCLUDED.completed,
			completed_at = EXCLUDED.completed_at,
			important = EXCLUDED.important,
			urgent = EXCLUDED.urgent,
			xp = EXCLUDED.xp,
			updated_at = EXCLUDED.updated_at`,
		step.ID(), step.UserID(), goalID,
		step.Title(), step.Day().Time(),
		step.IsCompleted(), step.CompletedAt(),
		step.IsImportant(), step.IsUrgent(), step.XP(),
		step.CreatedAt(), step.UpdatedAt(),
	)
	return err
}

// FindByID retrieves a step by its ID.
func (r *PostgresStepRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.DailyStep, error) {
	steps, err := r.findWhere(ctx, `id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, domain.ErrStepNotFound
	}
	return steps[0], nil
}

// FindByIDs retrieves steps by id, skipping ids that do not exist.
func (r *PostgresStepRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.DailyStep, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.findWhere(ctx, `id = ANY($1)`, ids)
}

// FindByUserAndDay retrieves all steps scheduled for a user and day.
func (r *PostgresStepRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day dates.Day) ([]*domain.DailyStep, error) {
	return r.findWhere(ctx, `user_id = $1 AND day = $2`, userID, day.Time())
}

// FindOverdue retrieves unfinished steps scheduled before the given day.
func (r *PostgresStepRepository) FindOverdue(ctx context.Context, userID uuid.UUID, before dates.Day) ([]*domain.DailyStep, error) {
	return r.findWhere(ctx, `user_id = $1 AND NOT completed AND day < $2`, userID, before.Time())
}

// FindByGoal retrieves all steps contributing to a goal.
func (r *PostgresStepRepository) FindByGoal(ctx context.Context, goalID uuid.UUID) ([]*domain.DailyStep, error) {
	return r.findWhere(ctx, `goal_id = $1`, goalID)
}

// Delete removes a step.
func (r *PostgresStepRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.PgxExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, `DELETE FROM daily_steps WHERE id = $1`, id)
	return err
}

func (r *PostgresStepRepository) findWhere(ctx context.Context, where string, args ...any) ([]*domain.DailyStep, error) {
	exec := database.PgxExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, `
		SELECT id, user_id, goal_id, title, day, completed, completed_at,
			important, urgent, xp, created_at, updated_at
		FROM daily_steps WHERE `+where+` ORDER BY day ASC, created_at ASC`,
		args...)
	if err != nil {
		return nil, err
	}
	return collectSteps(rows)
}

func collectSteps(rows pgx.Rows) ([]*domain.DailyStep, error) {
	defer rows.Close()

	var steps []*domain.DailyStep
	for rows.Next() {
		var (
			id, userID                   uuid.UUID
			goalID                       *uuid.UUID
			title                        string
			day                          time.Time
			completed, important, urgent bool
			completedAt                  *time.Time
			xp                           int
			createdAt, updatedAt         time.Time
		)

		err := rows.Scan(&id, &userID, &goalID, &title, &day, &completed,
			&completedAt, &important, &urgent, &xp, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}

		var gid uuid.UUID
		if goalID != nil {
			gid = *goalID
		}

		steps = append(steps, domain.RehydrateDailyStep(
			id, userID, gid, title, dayFromDate(day),
			completed, completedAt, important, urgent, xp,
			createdAt, updatedAt,
		))
	}
	return steps, rows.Err()
}

// dayFromDate converts a scanned DATE value to a local calendar day using
// its date components. pgx returns DATE values at UTC midnight, so going
// through the local clock could shift the day.
func dayFromDate(t time.Time) dates.Day {
	d, _ := dates.NewDay(t.Year(), t.Month(), t.Day())
	return d
}
