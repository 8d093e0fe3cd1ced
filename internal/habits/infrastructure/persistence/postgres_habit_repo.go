package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reluam/pokrok.app-sub004/internal/habits/domain"
	"github.com/reluam/pokrok.app-sub004/internal/recurrence"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

// PostgresHabitRepository implements domain.Repository on Postgres.
type PostgresHabitRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresHabitRepository creates a new Postgres habit repository.
func NewPostgresHabitRepository(pool *pgxpool.Pool) *PostgresHabitRepository {
	return &PostgresHabitRepository{pool: pool}
}

// Save upserts a habit and synchronizes its completion days.
func (r *PostgresHabitRepository) Save(ctx context.Context, habit *domain.Habit) error {
	exec := database.PgxExecutor(ctx, r.pool)

	var aspirationID *uuid.UUID
	if habit.AspirationID() != uuid.Nil {
		id := habit.AspirationID()
		aspirationID = &id
	}

	_, err := exec.Exec(ctx, `
		INSERT INTO habits (
			id, user_id, aspiration_id, name, description,
			rule_kind, rule_weekdays, rule_day_of_month, rule_anchor_date,
			always_show, xp_per_completion, streak, best_streak, total_done,
			archived, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			aspiration_id = EXCLUDED.aspiration_id,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			rule_kind = EXCLUDED.rule_kind,
			rule_weekdays = EXCLUDED.rule_weekdays,
			rule_day_of_month = EXCLUDED.rule_day_of_month,
			rule_anchor_date = EXCLUDED.rule_anchor_date,
			always_show = EXCLUDED.always_show,
			xp_per_completion = EXCLUDED.xp_per_completion,
			streak = EXCLUDED.streak,
			best_streak = EXCLUDED.best_streak,
			total_done = EXCLUDED.total_done,
			archived = EXCLUDED.archived,
			updated_at = EXCLUDED.updated_at`,
		habit.ID(), habit.UserID(), aspirationID,
		habit.Name(), nilIfEmpty(habit.Description()),
		string(habit.Rule().Kind()), habit.Rule().Weekdays().String(),
		habit.Rule().DayOfMonth(), habit.Rule().Anchor().Time(),
		habit.AlwaysShow(), habit.XPPerCompletion(),
		habit.Streak(), habit.BestStreak(), habit.TotalDone(),
		habit.IsArchived(), habit.CreatedAt(), habit.UpdatedAt(),
	)
	if err != nil {
		return err
	}

	if _, err := exec.Exec(ctx,
		`DELETE FROM habit_completions WHERE habit_id = $1`, habit.ID()); err != nil {
		return err
	}
	for _, d := range habit.CompletedDays() {
		if _, err := exec.Exec(ctx,
			`INSERT INTO habit_completions (habit_id, day, completed) VALUES ($1, $2, TRUE)`,
			habit.ID(), d.Time()); err != nil {
			return err
		}
	}

	return nil
}

// FindByID retrieves a habit by its ID.
func (r *PostgresHabitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Habit, error) {
	exec := database.PgxExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, `
		SELECT id, user_id, aspiration_id, name, description,
			rule_kind, rule_weekdays, rule_day_of_month, rule_anchor_date,
			always_show, xp_per_completion, streak, best_streak, total_done,
			archived, created_at, updated_at
		FROM habits WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	habits, err := r.collectHabits(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		return nil, domain.ErrHabitNotFound
	}
	return habits[0], nil
}

// FindByUserID retrieves all habits for a user.
func (r *PostgresHabitRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Habit, error) {
	return r.findWhere(ctx, `user_id = $1`, userID)
}

// FindActiveByUserID retrieves all non-archived habits for a user.
func (r *PostgresHabitRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Habit, error) {
	return r.findWhere(ctx, `user_id = $1 AND archived = FALSE`, userID)
}

// FindDueOn retrieves non-archived habits due on a given day.
func (r *PostgresHabitRepository) FindDueOn(ctx context.Context, userID uuid.UUID, day dates.Day) ([]*domain.Habit, error) {
	habits, err := r.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	due := make([]*domain.Habit, 0, len(habits))
	for _, h := range habits {
		if h.IsDueOn(day) {
			due = append(due, h)
		}
	}
	return due, nil
}

// Delete removes a habit. Completions go with it via CASCADE.
func (r *PostgresHabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.PgxExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, `DELETE FROM habits WHERE id = $1`, id)
	return err
}

func (r *PostgresHabitRepository) findWhere(ctx context.Context, where string, args ...any) ([]*domain.Habit, error) {
	exec := database.PgxExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, `
		SELECT id, user_id, aspiration_id, name, description,
			rule_kind, rule_weekdays, rule_day_of_month, rule_anchor_date,
			always_show, xp_per_completion, streak, best_streak, total_done,
			archived, created_at, updated_at
		FROM habits WHERE `+where+` ORDER BY created_at ASC`, args...)
	if err != nil {
		return nil, err
	}
	return r.collectHabits(ctx, rows)
}

func (r *PostgresHabitRepository) collectHabits(ctx context.Context, rows pgx.Rows) ([]*domain.Habit, error) {
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		var (
			id, userID                    uuid.UUID
			aspirationID                  *uuid.UUID
			name                          string
			description                   *string
			ruleKind, ruleWeekdays        string
			ruleDayOfMonth, xp            int
			anchor                        time.Time
			alwaysShow, archived          bool
			streak, bestStreak, totalDone int
			createdAt, updatedAt          time.Time
		)

		err := rows.Scan(&id, &userID, &aspirationID, &name, &description,
			&ruleKind, &ruleWeekdays, &ruleDayOfMonth, &anchor,
			&alwaysShow, &xp, &streak, &bestStreak, &totalDone,
			&archived, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}

		weekdays, err := recurrence.ParseWeekdays(ruleWeekdays)
		if err != nil {
			return nil, err
		}
		rule := recurrence.RehydrateRule(recurrence.Kind(ruleKind), weekdays,
			ruleDayOfMonth, dayFromDate(anchor))

		habits = append(habits, domain.RehydrateHabit(
			id, userID, derefUUID(aspirationID),
			name, derefString(description),
			rule, alwaysShow, xp,
			streak, bestStreak, totalDone, archived,
			createdAt, updatedAt, nil,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, h := range habits {
		days, err := r.loadCompletions(ctx, h.ID())
		if err != nil {
			return nil, err
		}
		habits[i] = domain.RehydrateHabit(
			h.ID(), h.UserID(), h.AspirationID(),
			h.Name(), h.Description(),
			h.Rule(), h.AlwaysShow(), h.XPPerCompletion(),
			h.Streak(), h.BestStreak(), h.TotalDone(), h.IsArchived(),
			h.CreatedAt(), h.UpdatedAt(), days,
		)
	}
	return habits, nil
}

func (r *PostgresHabitRepository) loadCompletions(ctx context.Context, habitID uuid.UUID) ([]dates.Day, error) {
	exec := database.PgxExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT day FROM habit_completions WHERE habit_id = $1 AND completed ORDER BY day ASC`,
		habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []dates.Day
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		days = append(days, dayFromDate(t))
	}
	return days, rows.Err()
}

// dayFromDate converts a scanned DATE value to a local calendar day using
// its date components. pgx returns DATE values at UTC midnight, so going
// through the local clock could shift the day.
func dayFromDate(t time.Time) dates.Day {
	d, _ := dates.NewDay(t.Year(), t.Month(), t.Day())
	return d
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefUUID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
