package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/planning/domain"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// SQLitePlanRepository implements domain.PlanRepository on SQLite.
type SQLitePlanRepository struct {
	db *sql.DB
}

// NewSQLitePlanRepository creates a new SQLite plan repository.
func NewSQLitePlanRepository(db *sql.DB) *SQLitePlanRepository {
	return &SQLitePlanRepository{db: db}
}

// Save upserts a plan and replaces its item ordering.
func (r *SQLitePlanRepository) Save(ctx context.Context, plan *domain.DailyPlan) error {
	exec := database.SQLiteExecutor(ctx, r.db)

	_, err := exec.ExecContext(ctx, `
		INSERT INTO daily_plans (id, user_id, day, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		plan.ID().String(),
		plan.UserID().String(),
		plan.Day().String(),
		plan.CreatedAt().UTC().Format(time.RFC3339),
		plan.UpdatedAt().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	if _, err := exec.ExecContext(ctx,
		`DELETE FROM daily_plan_items WHERE plan_id = ?`, plan.ID().String()); err != nil {
		return err
	}
	for pos, itemID := range plan.Items() {
		if _, err := exec.ExecContext(ctx,
			`INSERT INTO daily_plan_items (plan_id, item_id, position) VALUES (?, ?, ?)`,
			plan.ID().String(), itemID.String(), pos); err != nil {
			return err
		}
	}

	return nil
}

// FindByID retrieves a plan by its ID.
func (r *SQLitePlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.DailyPlan, error) {
	return r.findOne(ctx, `id = ?`, id.String())
}

// FindByUserAndDay retrieves the plan for a user and day.
func (r *SQLitePlanRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day dates.Day) (*domain.DailyPlan, error) {
	return r.findOne(ctx, `user_id = ? AND day = ?`, userID.String(), day.String())
}

// FindByUserBetween retrieves plans inside a day range, both ends inclusive.
func (r *SQLitePlanRepository) FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to dates.Day) ([]*domain.DailyPlan, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx, `
		SELECT id, user_id, day, created_at, updated_at
		FROM daily_plans
		WHERE user_id = ? AND day >= ? AND day <= ?
		ORDER BY day ASC`,
		userID.String(), from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*domain.DailyPlan
	for rows.Next() {
		plan, err := r.scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, p := range plans {
		items, err := r.loadItems(ctx, p.ID())
		if err != nil {
			return nil, err
		}
		plans[i] = domain.RehydrateDailyPlan(p.ID(), p.UserID(), p.Day(), items,
			p.CreatedAt(), p.UpdatedAt())
	}
	return plans, nil
}

func (r *SQLitePlanRepository) findOne(ctx context.Context, where string, args ...any) (*domain.DailyPlan, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	row := exec.QueryRowContext(ctx,
		`SELECT id, user_id, day, created_at, updated_at FROM daily_plans WHERE `+where, args...)

	plan, err := r.scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, plan.ID())
	if err != nil {
		return nil, err
	}
	return domain.RehydrateDailyPlan(plan.ID(), plan.UserID(), plan.Day(), items,
		plan.CreatedAt(), plan.UpdatedAt()), nil
}

func (r *SQLitePlanRepository) loadItems(ctx context.Context, planID uuid.UUID) ([]uuid.UUID, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx,
		`SELECT item_id FROM daily_plan_items WHERE plan_id = ? ORDER BY position ASC`,
		planID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []uuid.UUID
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	return items, rows.Err()
}

func (r *SQLitePlanRepository) scanPlan(row rowScanner) (*domain.DailyPlan, error) {
	var id, userID, dayStr, createdAt, updatedAt string

	if err := row.Scan(&id, &userID, &dayStr, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	pid, err := uuid.Parse(id)
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

	return domain.RehydrateDailyPlan(pid, uid, day, nil, created, updated), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
