package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command so concurrent
// operations stay isolated.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary over the three repositories.
// Repositories obtained before Begin or after Commit/Rollback run outside a
// transaction, one statement at a time.
type UnitOfWork interface {
	// Begin starts a transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. It returns an error when
	// none is active, which deferred calls after Commit ignore.
	Rollback(ctx context.Context) error

	JobRepository() JobRepository
	WorkerRepository() WorkerRepository
	AssignmentRepository() AssignmentRepository
}
