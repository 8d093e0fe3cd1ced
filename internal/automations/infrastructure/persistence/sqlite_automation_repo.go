package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/automations/domain"
	"github.com/reluam/pokrok.app-sub004/internal/recurrence"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

const automationColumns = `id, user_id, name, target_value, current_value,
	update_value, rule_kind, rule_weekdays, rule_day_of_month,
	rule_anchor_date, active, last_applied_day, created_at, updated_at`

// SQLiteAutomationRepository implements domain.Repository on SQLite.
type SQLiteAutomationRepository struct {
	db *sql.DB
}

// NewSQLiteAutomationRepository creates a new SQLite automation repository.
func NewSQLiteAutomationRepository(db *sql.DB) *SQLiteAutomationRepository {
	return &SQLiteAutomationRepository{db: db}
}

// Save upserts an automation.
func (r *SQLiteAutomationRepository) Save(ctx context.Context, automation *domain.Automation) error {
	exec := database.SQLiteExecutor(ctx, r.db)

	var lastApplied sql.NullString
	if !automation.LastAppliedDay().IsZero() {
		lastApplied = sql.NullString{String: automation.LastAppliedDay().String(), Valid: true}
	}

	_, err := exec.ExecContext(ctx, `
		INSERT INTO automations (`+automationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			target_value = excluded.target_value,
			current_value = excluded.current_value,
			update_value = excluded.update_value,
			rule_kind = excluded.rule_kind,
			rule_weekdays = excluded.rule_weekdays,
			rule_day_of_month = excluded.rule_day_of_month,
			rule_anchor_date = excluded.rule_anchor_date,
			active = excluded.active,
			last_applied_day = excluded.last_applied_day,
			updated_at = excluded.updated_at`,
		automation.ID().String(),
		automation.UserID().String(),
		automation.Name(),
		automation.TargetValue(),
		automation.CurrentValue(),
		automation.UpdateValue(),
		string(automation.Rule().Kind()),
		automation.Rule().Weekdays().String(),
		automation.Rule().DayOfMonth(),
		automation.Rule().Anchor().String(),
		boolToInt(automation.IsActive()),
		lastApplied,
		automation.CreatedAt().UTC().Format(time.RFC3339),
		automation.UpdatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

// FindByID retrieves an automation by its ID.
func (r *SQLiteAutomationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Automation, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	row := exec.QueryRowContext(ctx,
		`SELECT `+automationColumns+` FROM automations WHERE id = ?`, id.String())

	automation, err := scanAutomation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAutomationNotFound
	}
	return automation, err
}

// FindByUserID retrieves all automations for a user.
func (r *SQLiteAutomationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Automation, error) {
	return r.findWhere(ctx, `user_id = ?`, userID.String())
}

// FindActive retrieves every active automation across users; the accrual
// sweep walks this set.
func (r *SQLiteAutomationRepository) FindActive(ctx context.Context) ([]*domain.Automation, error) {
	return r.findWhere(ctx, `active = 1`)
}

// Delete removes an automation.
func (r *SQLiteAutomationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.SQLiteExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx, `DELETE FROM automations WHERE id = ?`, id.String())
	return err
}

func (r *SQLiteAutomationRepository) findWhere(ctx context.Context, where string, args ...any) ([]*domain.Automation, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx,
		`SELECT `+automationColumns+` FROM automations WHERE `+where+` ORDER BY created_at ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var automations []*domain.Automation
	for rows.Next() {
		automation, err := scanAutomation(rows)
		if err != nil {
			return nil, err
		}
		automations = append(automations, automation)
	}
	return automations, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAutomation(row rowScanner) (*domain.Automation, error) {
	var (
		id, userID, name, ruleKind, ruleWeekdays, anchorStr string
		target, current, update                             float64
		ruleDayOfMonth, active                              int
		lastApplied                                         sql.NullString
		createdAt, updatedAt                                string
	)

	err := row.Scan(&id, &userID, &name, &target, &current, &update,
		&ruleKind, &ruleWeekdays, &ruleDayOfMonth, &anchorStr,
		&active, &lastApplied, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	aid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	anchor, err := dates.ParseDay(anchorStr)
	if err != nil {
		return nil, err
	}
	weekdays, err := recurrence.ParseWeekdays(ruleWeekdays)
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

	var lastDay dates.Day
	if lastApplied.Valid {
		lastDay, err = dates.ParseDay(lastApplied.String)
		if err != nil {
			return nil, err
		}
	}

	rule := recurrence.RehydrateRule(recurrence.Kind(ruleKind), weekdays, ruleDayOfMonth, anchor)

	return domain.RehydrateAutomation(
		aid, uid, name, target, current, update,
		rule, active != 0, lastDay,
		created, updated,
	), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
