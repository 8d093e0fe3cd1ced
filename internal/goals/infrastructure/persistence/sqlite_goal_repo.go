package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/goals/domain"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
)

const goalColumns = `id, user_id, aspiration_id, name, progress_mode,
	manual_progress, status, completed_progress, created_at, updated_at`

// SQLiteGoalRepository implements domain.Repository on SQLite.
type SQLiteGoalRepository struct {
	db *sql.DB
}

// NewSQLiteGoalRepository creates a new SQLite goal repository.
func NewSQLiteGoalRepository(db *sql.DB) *SQLiteGoalRepository {
	return &SQLiteGoalRepository{db: db}
}

// Save upserts a goal and synchronizes its metrics.
func (r *SQLiteGoalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	exec := database.SQLiteExecutor(ctx, r.db)

	var completed sql.NullInt64
	if pct, ok := goal.CompletedProgress(); ok {
		completed = sql.NullInt64{Int64: int64(pct), Valid: true}
	}

	_, err := exec.ExecContext(ctx, `
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			aspiration_id = excluded.aspiration_id,
			name = excluded.name,
			progress_mode = excluded.progress_mode,
			manual_progress = excluded.manual_progress,
			status = excluded.status,
			completed_progress = excluded.completed_progress,
			updated_at = excluded.updated_at`,
		goal.ID().String(),
		goal.UserID().String(),
		uuidToNull(goal.AspirationID()),
		goal.Name(),
		string(goal.Mode()),
		goal.ManualProgress(),
		string(goal.Status()),
		completed,
		goal.CreatedAt().UTC().Format(time.RFC3339),
		goal.UpdatedAt().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	// Metrics are replaced wholesale; a goal holds at most a handful.
	if _, err := exec.ExecContext(ctx,
		`DELETE FROM goal_metrics WHERE goal_id = ?`, goal.ID().String()); err != nil {
		return err
	}
	for _, m := range goal.Metrics() {
		if _, err := exec.ExecContext(ctx, `
			INSERT INTO goal_metrics (id, goal_id, name, current_value, target_value, unit)
			VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID().String(), goal.ID().String(), m.Name(),
			m.Current(), m.Target(), m.Unit()); err != nil {
			return err
		}
	}

	return nil
}

// FindByID retrieves a goal by its ID.
func (r *SQLiteGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	row := exec.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ?`, id.String())

	goal, err := r.scanGoal(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGoalNotFound
	}
	return goal, err
}

// FindByUserID retrieves all goals for a user.
func (r *SQLiteGoalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	return r.findWhere(ctx, `user_id = ?`, userID.String())
}

// FindByAspiration retrieves all goals linked to an aspiration.
func (r *SQLiteGoalRepository) FindByAspiration(ctx context.Context, aspirationID uuid.UUID) ([]*domain.Goal, error) {
	return r.findWhere(ctx, `aspiration_id = ?`, aspirationID.String())
}

// Delete removes a goal. Metrics go with it via CASCADE.
func (r *SQLiteGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.SQLiteExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id.String())
	return err
}

func (r *SQLiteGoalRepository) findWhere(ctx context.Context, where string, args ...any) ([]*domain.Goal, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE `+where+` ORDER BY created_at ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
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

// scanGoal scans one row and attaches its metrics.
func (r *SQLiteGoalRepository) scanGoal(ctx context.Context, row rowScanner) (*domain.Goal, error) {
	goal, err := r.scanRow(row)
	if err != nil {
		return nil, err
	}
	metrics, err := r.loadMetrics(ctx, goal.ID())
	if err != nil {
		return nil, err
	}
	return withMetrics(goal, metrics), nil
}

func (r *SQLiteGoalRepository) scanRow(row rowScanner) (*domain.Goal, error) {
	var (
		id, userID, name, mode, status string
		aspirationID                   sql.NullString
		manualProgress                 int
		completedProgress              sql.NullInt64
		createdAt, updatedAt           string
	)

	err := row.Scan(&id, &userID, &aspirationID, &name, &mode,
		&manualProgress, &status, &completedProgress, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	gid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(userID)
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

	var completed *int
	if completedProgress.Valid {
		pct := int(completedProgress.Int64)
		completed = &pct
	}

	return domain.RehydrateGoal(
		gid, uid, nullToUUID(aspirationID),
		name, domain.ProgressMode(mode), manualProgress,
		domain.GoalStatus(status), completed,
		created, updated, nil,
	), nil
}

func (r *SQLiteGoalRepository) loadMetrics(ctx context.Context, goalID uuid.UUID) ([]*domain.Metric, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx, `
		SELECT id, name, current_value, target_value, unit
		FROM goal_metrics WHERE goal_id = ? ORDER BY id ASC`, goalID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []*domain.Metric
	for rows.Next() {
		var (
			id, name, unit  string
			current, target float64
		)
		if err := rows.Scan(&id, &name, &current, &target, &unit); err != nil {
			return nil, err
		}
		mid, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, domain.RehydrateMetric(mid, name, current, target, unit))
	}
	return metrics, rows.Err()
}

// withMetrics rebuilds the aggregate with its metrics attached.
func withMetrics(g *domain.Goal, metrics []*domain.Metric) *domain.Goal {
	var completed *int
	if pct, ok := g.CompletedProgress(); ok {
		completed = &pct
	}
	return domain.RehydrateGoal(
		g.ID(), g.UserID(), g.AspirationID(),
		g.Name(), g.Mode(), g.ManualProgress(),
		g.Status(), completed,
		g.CreatedAt(), g.UpdatedAt(), metrics,
	)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func uuidToNull(id uuid.UUID) sql.NullString {
	if id == uuid.Nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

func nullToUUID(ns sql.NullString) uuid.UUID {
	if !ns.Valid {
		return uuid.Nil
	}
	id, err := uuid.Parse(ns.String)
	if err != nil {
		return uuid.Nil
	}
	return id
}
