package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenPostgres creates a pgx connection pool for the given URL.
func OpenPostgres(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

type pgxTxKey struct{}

type pgxTxInfo struct {
	Tx    pgx.Tx
	Owned bool
}

// WithPgxTx stores a pgx transaction in the context.
func WithPgxTx(ctx context.Context, tx pgx.Tx, owned bool) context.Context {
	return context.WithValue(ctx, pgxTxKey{}, &pgxTxInfo{Tx: tx, Owned: owned})
}

// PgxTxFromContext extracts the current pgx transaction, if any.
func PgxTxFromContext(ctx context.Context) (pgx.Tx, bool) {
	info, ok := ctx.Value(pgxTxKey{}).(*pgxTxInfo)
	if !ok {
		return nil, false
	}
	return info.Tx, true
}

// PgxQuerier is the query surface shared by *pgxpool.Pool and pgx.Tx.
type PgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxExecutor returns the transaction from the context when present,
// and the pool otherwise.
func PgxExecutor(ctx context.Context, pool *pgxpool.Pool) PgxQuerier {
	if tx, ok := PgxTxFromContext(ctx); ok {
		return tx
	}
	return pool
}

// PgxUnitOfWork implements application.UnitOfWork over a pgx pool.
type PgxUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewPgxUnitOfWork creates a unit of work bound to the given pool.
func NewPgxUnitOfWork(pool *pgxpool.Pool) *PgxUnitOfWork {
	return &PgxUnitOfWork{pool: pool}
}

// Begin starts a transaction and stores it in the context. An existing
// transaction in the context is reused and not re-owned.
func (u *PgxUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if info, ok := ctx.Value(pgxTxKey{}).(*pgxTxInfo); ok {
		return WithPgxTx(ctx, info.Tx, false), nil
	}

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return WithPgxTx(ctx, tx, true), nil
}

// Commit commits the transaction if this unit owns it.
func (u *PgxUnitOfWork) Commit(ctx context.Context) error {
	info, ok := ctx.Value(pgxTxKey{}).(*pgxTxInfo)
	if !ok {
		return errors.New("no transaction in context")
	}
	if !info.Owned {
		return nil
	}
	return info.Tx.Commit(ctx)
}

// Rollback rolls back the transaction if this unit owns it.
func (u *PgxUnitOfWork) Rollback(ctx context.Context) error {
	info, ok := ctx.Value(pgxTxKey{}).(*pgxTxInfo)
	if !ok {
		return errors.New("no transaction in context")
	}
	if !info.Owned {
		return nil
	}
	return info.Tx.Rollback(ctx)
}
