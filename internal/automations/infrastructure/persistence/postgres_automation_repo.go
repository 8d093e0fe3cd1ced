package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reluam/pokrok.app-sub004/internal/automations/domain"
	"github.com/reluam/pokrok.app-sub004/internal/recurrence"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// PostgresAutomationRepository implements domain.Repository on Postgres.
type PostgresAutomationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAutomationRepository creates a new Postgres automation repository.
func NewPostgresAutomationRepository(pool *pgxpool.Pool) *PostgresAutomationRepository {
	return &PostgresAutomationRepository{pool: pool}
}

// Save upserts an automation.
func (r *PostgresAutomationRepository) Save(ctx context.Context, automation *domain.Automation) error {
	exec := database.PgxExecutor(ctx, r.pool)

	var lastApplied *time.Time
	if !automation.LastAppliedDay().IsZero() {
		t := automation.LastAppliedDay().Time()
		lastApplied = &t
	}

	_, err := exec.Exec(ctx, `
		INSERT INTO automations (
			id, user_id, name, target_value, current_value, update_value,
			rule_kind, rule_weekdays, rule_day_of_month, rule_anchor_date,
			active, last_applied_day, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			target_value = EXCLUDED.target_value,
			current_value = EXCLUDED.current_value,
			update_value = EXCLUDED.update_value,
			rule_kind = EXCLUDED.rule_kind,
			rule_weekdays = EXCLUDED.rule_weekdays,
			rule_day_of_month = EXCLUDED.rule_day_of_month,
			rule_anchor_date = EXCLUDED.rule_anchor_date,
			active = EXCLUDED.active,
			last_applied_day = EXCLUDED.last_applied_day,
			updated_at = EXCLUDED.updated_at`,
		automation.ID(), automation.UserID(), automation.Name(),
		automation.TargetValue(), automation.CurrentValue(), automation.UpdateValue(),
		string(automation.Rule().Kind()), automation.Rule().Weekdays().String(),
		automation.Rule().DayOfMonth(), automation.Rule().Anchor().Time(),
		automation.IsActive(), lastApplied,
		automation.CreatedAt(), automation.UpdatedAt(),
	)
	return err
}

// FindByID retrieves an automation by its ID.
func (r *PostgresAutomationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Automation, error) {
	automations, err := r.findWhere(ctx, `id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(automations) == 0 {
		return nil, domain.ErrAutomationNotFound
	}
	return automations[0], nil
}

// FindByUserID retrieves all automations for a user.
func (r *PostgresAutomationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Automation, error) {
	return r.findWhere(ctx, `user_id = $1`, userID)
}

// FindActive retrieves every active automation across users.
func (r *PostgresAutomationRepository) FindActive(ctx context.Context) ([]*domain.Automation, error) {
	return r.findWhere(ctx, `active`)
}

// Delete removes an automation.
func (r *PostgresAutomationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.PgxExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, `DELETE FROM automations WHERE id = $1`, id)
	return err
}

func (r *PostgresAutomationRepository) findWhere(ctx context.Context, where string, args ...any) ([]*domain.Automation, error) {
	exec := database.PgxExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, `
		SELECT id, user_id, name, target_value, current_value, update_value,
			rule_kind, rule_weekdays, rule_day_of_month, rule_anchor_date,
			active, last_applied_day, created_at, updated_at
		FROM automations WHERE `+where+` ORDER BY created_at ASC`, args...)
	if err != nil {
		return nil, err
	}
	return collectAutomations(rows)
}

func collectAutomations(rows pgx.Rows) ([]*domain.Automation, error) {
	defer rows.Close()

	var automations []*domain.Automation
	for rows.Next() {
		var (
			id, userID              uuid.UUID
			name                    string
			target, current, update float64
			ruleKind, ruleWeekdays  string
			ruleDayOfMonth          int
			anchor                  time.Time
			active                  bool
			lastApplied             *time.Time
			createdAt, updatedAt    time.Time
		)

		err := rows.Scan(&id, &userID, &name, &target, &current, &update,
			&ruleKind, &ruleWeekdays, &ruleDayOfMonth, &anchor,
			&active, &lastApplied, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}

		weekdays, err := recurrence.ParseWeekdays(ruleWeekdays)
		if err != nil {
			return nil, err
		}
		rule := recurrence.RehydrateRule(recurrence.Kind(ruleKind), weekdays,
			ruleDayOfMonth, dayFromDate(anchor))

		var lastDay dates.Day
		if lastApplied != nil {
			lastDay = dayFromDate(*lastApplied)
		}

		automations = append(automations, domain.RehydrateAutomation(
			id, userID, name, target, current, update,
			rule, active, lastDay,
			createdAt, updatedAt,
		))
	}
	return automations, rows.Err()
}

// dayFromDate converts a scanned DATE value to a local calendar day using
// its date components. pgx returns DATE values at UTC midnight, so going
// through the local clock could shift the day.
func dayFromDate(t time.Time) dates.Day {
	d, _ := dates.NewDay(t.Year(), t.Month(), t.Day())
	return d
}
