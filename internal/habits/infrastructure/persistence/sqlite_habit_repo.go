package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/reluam/pokrok.app-sub004/internal/habits/domain"
	"github.com/reluam/pokrok.app-sub004/internal/recurrence"
	"github.com/reluam/pokrok.app-sub004/internal/shared/infrastructure/database"
	"github.com/reluam/pokrok.app-sub004/pkg/dates"
)

const habitColumns = `id, user_id, aspiration_id, name, description,
	rule_kind, rule_weekdays, rule_day_of_month, rule_anchor_date,
	always_show, xp_per_completion, streak, best_streak, total_done,
	archived, created_at, updated_at`

// SQLiteHabitRepository implements domain.Repository on SQLite.
type SQLiteHabitRepository struct {
	db *sql.DB
}

// NewSQLiteHabitRepository creates a new SQLite habit repository.
func NewSQLiteHabitRepository(db *sql.DB) *SQLiteHabitRepository {
	return &SQLiteHabitRepository{db: db}
}

// Save upserts a habit and synchronizes its completion days.
func (r *SQLiteHabitRepository) Save(ctx context.Context, habit *domain.Habit) error {
	exec := database.SQLiteExecutor(ctx, r.db)

	_, err := exec.ExecContext(ctx, `
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			aspiration_id = excluded.aspiration_id,
			name = excluded.name,
			description = excluded.description,
			rule_kind = excluded.rule_kind,
			rule_weekdays = excluded.rule_weekdays,
			rule_day_of_month = excluded.rule_day_of_month,
			rule_anchor_date = excluded.rule_anchor_date,
			always_show = excluded.always_show,
			xp_per_completion = excluded.xp_per_completion,
			streak = excluded.streak,
			best_streak = excluded.best_streak,
			total_done = excluded.total_done,
			archived = excluded.archived,
			updated_at = excluded.updated_at`,
		habit.ID().String(),
		habit.UserID().String(),
		uuidToNull(habit.AspirationID()),
		habit.Name(),
		toNullString(habit.Description()),
		string(habit.Rule().Kind()),
		habit.Rule().Weekdays().String(),
		habit.Rule().DayOfMonth(),
		habit.Rule().Anchor().String(),
		boolToInt(habit.AlwaysShow()),
		habit.XPPerCompletion(),
		habit.Streak(),
		habit.BestStreak(),
		habit.TotalDone(),
		boolToInt(habit.IsArchived()),
		habit.CreatedAt().UTC().Format(time.RFC3339),
		habit.UpdatedAt().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	// Completions are replaced wholesale; the set is small and bounded.
	if _, err := exec.ExecContext(ctx,
		`DELETE FROM habit_completions WHERE habit_id = ?`, habit.ID().String()); err != nil {
		return err
	}
	for _, d := range habit.CompletedDays() {
		if _, err := exec.ExecContext(ctx,
			`INSERT INTO habit_completions (habit_id, day, completed) VALUES (?, ?, 1)`,
			habit.ID().String(), d.String()); err != nil {
			return err
		}
	}

	return nil
}

// FindByID retrieves a habit by its ID.
func (r *SQLiteHabitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Habit, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	row := exec.QueryRowContext(ctx,
		`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id.String())

	habit, err := r.scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}

	completions, err := r.loadCompletions(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.withCompletions(habit, completions), nil
}

// FindByUserID retrieves all habits for a user.
func (r *SQLiteHabitRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Habit, error) {
	return r.findWhere(ctx, `user_id = ?`, userID.String())
}

// FindActiveByUserID retrieves all non-archived habits for a user.
func (r *SQLiteHabitRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Habit, error) {
	return r.findWhere(ctx, `user_id = ? AND archived = 0`, userID.String())
}

// FindDueOn retrieves non-archived habits due on a given day. The rule is
// evaluated in memory after loading the active set.
func (r *SQLiteHabitRepository) FindDueOn(ctx context.Context, userID uuid.UUID, day dates.Day) ([]*domain.Habit, error) {
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
func (r *SQLiteHabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := database.SQLiteExecutor(ctx, r.db)
	_, err := exec.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id.String())
	return err
}

func (r *SQLiteHabitRepository) findWhere(ctx context.Context, where string, args ...any) ([]*domain.Habit, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx,
		`SELECT `+habitColumns+` FROM habits WHERE `+where+` ORDER BY created_at ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		habit, err := r.scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, h := range habits {
		completions, err := r.loadCompletions(ctx, h.ID())
		if err != nil {
			return nil, err
		}
		habits[i] = r.withCompletions(h, completions)
	}
	return habits, nil
}

func (r *SQLiteHabitRepository) loadCompletions(ctx context.Context, habitID uuid.UUID) ([]dates.Day, error) {
	exec := database.SQLiteExecutor(ctx, r.db)
	rows, err := exec.QueryContext(ctx,
		`SELECT day FROM habit_completions WHERE habit_id = ? AND completed = 1 ORDER BY day ASC`,
		habitID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []dates.Day
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		d, err := dates.ParseDay(s)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanHabit rehydrates a habit without its completions.
func (r *SQLiteHabitRepository) scanHabit(row rowScanner) (*domain.Habit, error) {
	var (
		id, userID, name, ruleKind, ruleWeekdays, anchorStr string
		aspirationID, description                           sql.NullString
		ruleDayOfMonth, alwaysShow, xp                      int
		streak, bestStreak, totalDone, archived             int
		createdAt, updatedAt                                string
	)

	err := row.Scan(&id, &userID, &aspirationID, &name, &description,
		&ruleKind, &ruleWeekdays, &ruleDayOfMonth, &anchorStr,
		&alwaysShow, &xp, &streak, &bestStreak, &totalDone,
		&archived, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	hid, err := uuid.Parse(id)
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

	rule := recurrence.RehydrateRule(recurrence.Kind(ruleKind), weekdays, ruleDayOfMonth, anchor)

	return domain.RehydrateHabit(
		hid, uid, nullToUUID(aspirationID),
		name, fromNullString(description),
		rule, alwaysShow != 0, xp,
		streak, bestStreak, totalDone, archived != 0,
		created, updated, nil,
	), nil
}

// withCompletions rebuilds the aggregate with its completion days attached.
func (r *SQLiteHabitRepository) withCompletions(h *domain.Habit, days []dates.Day) *domain.Habit {
	return domain.RehydrateHabit(
		h.ID(), h.UserID(), h.AspirationID(),
		h.Name(), h.Description(),
		h.Rule(), h.AlwaysShow(), h.XPPerCompletion(),
		h.Streak(), h.BestStreak(), h.TotalDone(), h.IsArchived(),
		h.CreatedAt(), h.UpdatedAt(), days,
	)
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
