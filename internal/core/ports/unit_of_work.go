package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command, so concurrent
// dispatch operations never share transaction state.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a dispatch command. Callers drive
// the lifecycle explicitly: Begin, use the repository, then Commit or
// Rollback. Conditional claims and status writes only hold their guarantees
// inside such a boundary.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction. Fails when no transaction is
	// active.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Fails when no transaction
	// is active.
	Rollback(ctx context.Context) error

	// OrderRepository returns an order repository bound to the transaction
	// started by Begin.
	OrderRepository() OrderRepository
}
