package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

const stepColumns = `id, user_id, goal_id, title, day, completed, completed_at,
	important, urgent, xp, created_at, updated_at`

// SQLiteStepRepository implements domain.StepRepository on SQLite.
type SQLiteStepRepository struct {
	db *sql.DB
}

// NewSQLiteStepRepository creates a new SQLite step repository.
func NewSQLiteStepRepository(db *sql.DB) *SQLiteStepRepository {
	return &SQLiteStepRepository{db: db}
}

// Save upserts a step.
func (r *SQLiteStepRepository) Save(ctx context.Context, step *domain.DailyStep) error {
	exec := database.SQLiteExecutor(ctx, r.db)

	var completedAt sql.NullString
	if step.CompletedAt() != nil {
		completedAt = sql.NullString{String: step.CompletedAt().UTC().Format(time.RFC3339), Valid: true}
	}
	var goalID sql.NullString
	if step.GoalID() != uuid.Nil {
		goalID = sql.NullString{String: step.GoalID().String(), Valid: true}
	}

	_, err := exec.ExecContext(ctx, `
		INSERT INTO daily_steps (`+stepColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			goal_id = excluded.goal_id,
			title = excluded.title,
			day = excluded.day,
			completed = excluded.completed,
			completed_at = excluded.completed_at,
			important = excluded.important,
			urgent = excluded.urgent,
			xp = excluded.xp,
			updated_at = excluded.updated_at`,
		step.ID().String(),
		step.UserID().String(),
		goalID,
		step.Title(),
		step.Day().String(),
		boolToInt(step.IsCompleted()),
		completedAt,
		boolToInt(step.IsImportant()),
		boolToInt(step.IsUrgent()),
		step.XP(),
		step.CreatedAt().UTC().Format(time.RFC3339),
		step.UpdatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

// FindByID retrieves a step by its ID.
func (r *SQLiteStepRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.DailyStep, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	row := exec.QueryRowContext(ctx,
		`SELECT `+stepColumns+` FROM daily_steps WHERE id = ?`, id.String())

	step, err := scanStep(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStepNotFound
	}
	return step, err
}

// FindByIDs retrieves steps by id, skipping ids that do not exist.
func (r *SQLiteStepRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.DailyStep, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}

	return r.findWhere(ctx, `id IN (`+placeholders+`)`, args...)
}

// FindByUserAndDay retrieves all steps scheduled for a user and day.
func (r *SQLiteStepRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day dates.Day) ([]*domain.DailyStep, error) {
	return r.findWhere(ctx, `user_id = ? AND day = ?`, userID.String(), day.String())
}

// FindOverdue retrieves unfinished steps scheduled before the given day.
func (r *SQLiteStepRepository) FindOverdue(ctx context.Context, userID uuid.UUID, before dates.Day) ([]*domain.DailyStep, error) {
	return r.findWhere(ctx, `user_id = ? AND completed = 0 AND day < ?`,
		userID.String(), before.String())
}

// FindByGoal retrieves all steps contributing to a goal.
func (r *SQLiteStepRepository) FindByGoal(ctx context.Context, goalID uuid.UUID) ([]*domain.DailyStep, error) {
	return r.findWhere(ctx, `goal_id = ?`, goalID.String())
}

// Delete removes a step.
func (r *SQLiteStepRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.SQLiteExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx, `DELETE FROM daily_steps WHERE id = ?`, id.String())
	return err
}

func (r *SQLiteStepRepository) findWhere(ctx context.Context, where string, args ...any) ([]*domain.DailyStep, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx,
		`SELECT `+stepColumns+` FROM daily_steps WHERE `+where+` ORDER BY day ASC, created_at ASC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []*domain.DailyStep
	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

func scanStep(row rowScanner) (*domain.DailyStep, error) {
	var (
		id, userID, title, dayStr        string
		goalID, completedAt              sql.NullString
		completed, important, urgent, xp int
		createdAt, updatedAt             string
	)

	err := row.Scan(&id, &userID, &goalID, &title, &dayStr, &completed,
		&completedAt, &important, &urgent, &xp, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	day, err := dates.ParseDay(dayStr)
	if err != nil {
		return nil, err
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, err
	}

	var gid uuid.UUID
	if goalID.Valid {
		if gid, err = uuid.Parse(goalID.String); err != nil {
			return nil, err
		}
	}
	var doneAt *time.Time
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return nil, err
		}
		doneAt = &t
	}

	return domain.RehydrateDailyStep(sid, uid, gid, title, day,
		completed != 0, doneAt, important != 0, urgent != 0, xp,
		created, updated), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
