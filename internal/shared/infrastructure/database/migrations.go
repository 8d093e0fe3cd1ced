package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// sqliteSchema is the full local schema. Statements are idempotent so the
// CLI can run them on every start.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		aspiration_id TEXT,
		name TEXT NOT NULL,
		description TEXT,
		rule_kind TEXT NOT NULL,
		rule_weekdays TEXT NOT NULL DEFAULT '',
		rule_day_of_month INTEGER NOT NULL DEFAULT 0,
		rule_anchor_date TEXT NOT NULL,
		always_show INTEGER NOT NULL DEFAULT 0,
		xp_per_completion INTEGER NOT NULL DEFAULT 10,
		streak INTEGER NOT NULL DEFAULT 0,
		best_streak INTEGER NOT NULL DEFAULT 0,
		total_done INTEGER NOT NULL DEFAULT 0,
		archived INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id)`,
	`CREATE TABLE IF NOT EXISTS habit_completions (
		habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		day TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (habit_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS daily_steps (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		goal_id TEXT,
		title TEXT NOT NULL,
		day TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT,
		important INTEGER NOT NULL DEFAULT 0,
		urgent INTEGER NOT NULL DEFAULT 0,
		xp INTEGER NOT NULL DEFAULT 10,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_steps_user_day ON daily_steps(user_id, day)`,
	`CREATE TABLE IF NOT EXISTS daily_plans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		day TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (user_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS daily_plan_items (
		plan_id TEXT NOT NULL REFERENCES daily_plans(id) ON DELETE CASCADE,
		item_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (plan_id, item_id)
	)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		aspiration_id TEXT,
		name TEXT NOT NULL,
		progress_mode TEXT NOT NULL,
		manual_progress INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		completed_progress INTEGER,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id)`,
	`CREATE TABLE IF NOT EXISTS goal_metrics (
		id TEXT PRIMARY KEY,
		goal_id TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		current_value REAL NOT NULL DEFAULT 0,
		target_value REAL NOT NULL DEFAULT 0,
		unit TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS automations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		target_value REAL NOT NULL,
		current_value REAL NOT NULL DEFAULT 0,
		update_value REAL NOT NULL,
		rule_kind TEXT NOT NULL,
		rule_weekdays TEXT NOT NULL DEFAULT '',
		rule_day_of_month INTEGER NOT NULL DEFAULT 0,
		rule_anchor_date TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		last_applied_day TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_automations_user ON automations(user_id)`,
	`CREATE TABLE IF NOT EXISTS outbox_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id TEXT NOT NULL UNIQUE,
		aggregate_type TEXT NOT NULL,
		aggregate_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		routing_key TEXT NOT NULL,
		payload TEXT NOT NULL,
		metadata TEXT NOT NULL,
		created_at TEXT NOT NULL,
		published_at TEXT,
		retry_count INTEGER NOT NULL DEFAULT 0,
		last_error TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_unpublished ON outbox_messages(published_at) WHERE published_at IS NULL`,
}

// postgresSchema mirrors the SQLite schema with native UUID, DATE and
// TIMESTAMPTZ column types.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS habits (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		aspiration_id UUID,
		name TEXT NOT NULL,
		description TEXT,
		rule_kind TEXT NOT NULL,
		rule_weekdays TEXT NOT NULL DEFAULT '',
		rule_day_of_month INT NOT NULL DEFAULT 0,
		rule_anchor_date DATE NOT NULL,
		always_show BOOLEAN NOT NULL DEFAULT FALSE,
		xp_per_completion INT NOT NULL DEFAULT 10,
		streak INT NOT NULL DEFAULT 0,
		best_streak INT NOT NULL DEFAULT 0,
		total_done INT NOT NULL DEFAULT 0,
		archived BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id)`,
	`CREATE TABLE IF NOT EXISTS habit_completions (
		habit_id UUID NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		day DATE NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT TRUE,
		PRIMARY KEY (habit_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS daily_steps (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		goal_id UUID,
		title TEXT NOT NULL,
		day DATE NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at TIMESTAMPTZ,
		important BOOLEAN NOT NULL DEFAULT FALSE,
		urgent BOOLEAN NOT NULL DEFAULT FALSE,
		xp INT NOT NULL DEFAULT 10,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_steps_user_day ON daily_steps(user_id, day)`,
	`CREATE TABLE IF NOT EXISTS daily_plans (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		day DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS daily_plan_items (
		plan_id UUID NOT NULL REFERENCES daily_plans(id) ON DELETE CASCADE,
		item_id UUID NOT NULL,
		position INT NOT NULL,
		PRIMARY KEY (plan_id, item_id)
	)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		aspiration_id UUID,
		name TEXT NOT NULL,
		progress_mode TEXT NOT NULL,
		manual_progress INT NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		completed_progress INT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id)`,
	`CREATE TABLE IF NOT EXISTS goal_metrics (
		id UUID PRIMARY KEY,
		goal_id UUID NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		current_value DOUBLE PRECISION NOT NULL DEFAULT 0,
		target_value DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS automations (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		name TEXT NOT NULL,
		target_value DOUBLE PRECISION NOT NULL,
		current_value DOUBLE PRECISION NOT NULL DEFAULT 0,
		update_value DOUBLE PRECISION NOT NULL,
		rule_kind TEXT NOT NULL,
		rule_weekdays TEXT NOT NULL DEFAULT '',
		rule_day_of_month INT NOT NULL DEFAULT 0,
		rule_anchor_date DATE NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		last_applied_day DATE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_automations_user ON automations(user_id)`,
	`CREATE TABLE IF NOT EXISTS outbox_messages (
		id BIGSERIAL PRIMARY KEY,
		event_id UUID NOT NULL UNIQUE,
		aggregate_type TEXT NOT NULL,
		aggregate_id UUID NOT NULL,
		event_type TEXT NOT NULL,
		routing_key TEXT NOT NULL,
		payload JSONB NOT NULL,
		metadata JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		published_at TIMESTAMPTZ,
		retry_count INT NOT NULL DEFAULT 0,
		last_error TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_unpublished ON outbox_messages(published_at) WHERE published_at IS NULL`,
}

// MigrateSQLite applies the local schema.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply sqlite schema: %w", err)
		}
	}
	return nil
}

// MigratePostgres applies the Postgres schema.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply postgres schema: %w", err)
		}
	}
	return nil
}
