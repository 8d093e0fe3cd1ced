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

// PostgresPlanRepository implements domain.PlanRepository on Postgres.
type PostgresPlanRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPlanRepository creates a new Postgres plan repository.
func NewPostgresPlanRepository(pool *pgxpool.Pool) *PostgresPlanRepository {
	return &PostgresPlanRepository{pool: pool}
}

// Save upserts a plan and replaces its item ordering.
func (r *PostgresPlanRepository) Save(ctx context.Context, plan *domain.DailyPlan) error {
	exec := database.PgxExecutor(ctx, r.pool)

	_, err := exec.Exec(ctx, `
		INSERT INTO daily_plans (id, user_id, day, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET updated_at = EXCLUDED.updated_at`,
		plan.ID(), plan.UserID(), plan.Day().Time(),
		plan.CreatedAt(), plan.UpdatedAt(),
	)
	if err != nil {
		return err
	}

	if _, err := exec.Exec(ctx,
		`DELETE FROM daily_plan_items WHERE plan_id = $1`, plan.ID()); err != nil {
		return err
	}
	for pos, itemID := range plan.Items() {
		if _, err := exec.Exec(ctx,
			`INSERT INTO daily_plan_items (plan_id, item_id, position) VALUES ($1, $2, $3)`,
			plan.ID(), itemID, pos); err != nil {
			return err
		}
	}

	return nil
}

// FindByID retrieves a plan by its ID.
func (r *PostgresPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.DailyPlan, error) {
	return r.findOne(ctx, `id = $1`, id)
}

// FindByUserAndDay retrieves the plan for a user and day.
func (r *PostgresPlanRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day dates.Day) (*domain.DailyPlan, error) {
	return r.findOne(ctx, `user_id = $1 AND day = $2`, userID, day.Time())
}

// FindByUserBetween retrieves plans inside a day range, both ends inclusive.
func (r *PostgresPlanRepository) FindByUserBetween(ctx context.Context, userID uuid.UUID, from, to dates.Day) ([]*domain.DailyPlan, error) {
	exec := database.PgxExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, `
		SELECT id, user_id, day, created_at, updated_at
		FROM daily_plans
		WHERE user_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day ASC`,
		userID, from.Time(), to.Time())
	if err != nil {
		return nil, err
	}

	plans, err := collectPlans(rows)
	if err != nil {
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

func (r *PostgresPlanRepository) findOne(ctx context.Context, where string, args ...any) (*domain.DailyPlan, error) {
	exec := database.PgxExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT id, user_id, day, created_at, updated_at FROM daily_plans WHERE `+where, args...)
	if err != nil {
		return nil, err
	}

	plans, err := collectPlans(rows)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, domain.ErrPlanNotFound
	}

	plan := plans[0]
	items, err := r.loadItems(ctx, plan.ID())
	if err != nil {
		return nil, err
	}
	return domain.RehydrateDailyPlan(plan.ID(), plan.UserID(), plan.Day(), items,
		plan.CreatedAt(), plan.UpdatedAt()), nil
}

func collectPlans(rows pgx.Rows) ([]*domain.DailyPlan, error) {
	defer rows.Close()

	var plans []*domain.DailyPlan
	for rows.Next() {
		var (
			id, userID           uuid.UUID
			day                  time.Time
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &userID, &day, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, domain.RehydrateDailyPlan(id, userID, dayFromDate(day), nil,
			createdAt, updatedAt))
	}
	return plans, rows.Err()
}

func (r *PostgresPlanRepository) loadItems(ctx context.Context, planID uuid.UUID) ([]uuid.UUID, error) {
	exec := database.PgxExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT item_id FROM daily_plan_items WHERE plan_id = $1 ORDER BY position ASC`,
		planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	return items, rows.Err()
}
