package application

import (
	"context"
	"fmt"
)

// UnitOfWork is one transaction boundary shared by the repositories it exposes.
// An instance is either active, holding exactly one open transaction, or closed.
// It is not safe for concurrent use.
type UnitOfWork interface {
	Projects() ProjectRepo
	Tasks() TaskRepo
	// Complete commits the current transaction and begins a new one on the same
	// connection, so the instance can take another batch of work. If the commit
	// fails the transaction is rolled back and the unit of work is closed.
	Complete(ctx context.Context) error
	// Close rolls back the open transaction, if any, and releases the connection.
	// Calling it more than once is a no-op.
	Close(ctx context.Context) error
}

// UnitOfWorkFactory opens a connection and begins the first transaction.
type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// WithUnitOfWork runs fn inside a fresh unit of work and completes it when fn
// returns nil. The unit of work is closed on every exit path, panics included,
// so work that was not completed is rolled back.
func WithUnitOfWork(ctx context.Context, f UnitOfWorkFactory, fn func(ctx context.Context, uow UnitOfWork) error) (err error) {
	uow, err := f.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if v := recover(); v != nil {
			_ = uow.Close(ctx)
			panic(v)
		}
		if cerr := uow.Close(ctx); cerr != nil && err == nil {
			err = fmt.Errorf("close unit of work: %w", cerr)
		}
	}()
	if err = fn(ctx, uow); err != nil {
		return err
	}
	return uow.Complete(ctx)
}
