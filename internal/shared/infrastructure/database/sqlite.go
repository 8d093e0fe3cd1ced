package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultSQLitePath returns the default location of the local database.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pokrok.db"
	}
	return filepath.Join(home, ".pokrok", "pokrok.db")
}

// OpenSQLite opens (and creates, if needed) the SQLite database at path.
// An empty path uses DefaultSQLitePath.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultSQLitePath()
	}
	path = strings.TrimPrefix(path, "sqlite://")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// Pragmas: WAL for concurrency, enforced foreign keys, a busy timeout
	// instead of immediate lock failures, NORMAL sync for local use.
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?"
	} else {
		dsn += "&"
	}
	dsn += "_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open SQLite database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping SQLite database: %w", err)
	}

	return db, nil
}

type sqliteTxKey struct{}

// sqliteTxInfo carries a transaction through the context together with
// ownership, so nested units of work reuse the outer transaction.
type sqliteTxInfo struct {
	Tx    *sql.Tx
	Owned bool
}

// WithSQLiteTx stores a transaction in the context.
func WithSQLiteTx(ctx context.Context, tx *sql.Tx, owned bool) context.Context {
	return context.WithValue(ctx, sqliteTxKey{}, &sqliteTxInfo{Tx: tx, Owned: owned})
}

// SQLiteTxFromContext extracts the current transaction, if any.
func SQLiteTxFromContext(ctx context.Context) (*sql.Tx, bool) {
	info, ok := ctx.Value(sqliteTxKey{}).(*sqliteTxInfo)
	if !ok {
		return nil, false
	}
	return info.Tx, true
}

// SQLiteQuerier is the query surface shared by *sql.DB and *sql.Tx.
type SQLiteQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteExecutor returns the transaction from the context when present,
// and the raw connection otherwise.
func SQLiteExecutor(ctx context.Context, db *sql.DB) SQLiteQuerier {
	if tx, ok := SQLiteTxFromContext(ctx); ok {
		return tx
	}
	return db
}

// SQLiteUnitOfWork implements application.UnitOfWork over a SQLite connection.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

// NewSQLiteUnitOfWork creates a unit of work bound to the given connection.
func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// Begin starts a transaction and stores it in the context. An existing
// transaction in the context is reused and not re-owned.
func (u *SQLiteUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if info, ok := ctx.Value(sqliteTxKey{}).(*sqliteTxInfo); ok {
		return WithSQLiteTx(ctx, info.Tx, false), nil
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return WithSQLiteTx(ctx, tx, true), nil
}

// Commit commits the transaction if this unit owns it.
func (u *SQLiteUnitOfWork) Commit(ctx context.Context) error {
	info, ok := ctx.Value(sqliteTxKey{}).(*sqliteTxInfo)
	if !ok {
		return errors.New("no transaction in context")
	}
	if !info.Owned {
		return nil
	}
	return info.Tx.Commit()
}

// Rollback rolls back the transaction if this unit owns it.
func (u *SQLiteUnitOfWork) Rollback(ctx context.Context) error {
	info, ok := ctx.Value(sqliteTxKey{}).(*sqliteTxInfo)
	if !ok {
		return errors.New("no transaction in context")
	}
	if !info.Owned {
		return nil
	}
	return info.Tx.Rollback()
}
