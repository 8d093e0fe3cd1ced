// Package application holds the shared command/query contracts and the
// unit-of-work abstraction used by all handlers.
package application

import "context"

// UnitOfWork scopes a group of repository calls to one transaction. Begin
// returns a context carrying the transaction; repositories pick it up from
// there.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWorkFunc is the body run inside a unit of work.
type UnitOfWorkFunc func(ctx context.Context) error

// WithUnitOfWork runs fn in a transaction, rolling back on error and
// committing otherwise.
func WithUnitOfWork(ctx context.Context, uow UnitOfWork, fn UnitOfWorkFunc) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(txCtx); err != nil {
		_ = uow.Rollback(txCtx)
		return err
	}

	return uow.Commit(txCtx)
}
