package ports

import (
	"context"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/worker"
)

// WorkerRepository is the persistence contract for worker profiles.
// Reputation counters are shared with other subsystems, so they are changed
// with in-place increments instead of load-modify-save.
type WorkerRepository interface {
	// Add persists a new worker with its availability slots.
	Add(ctx context.Context, aggregate *worker.Worker) error

	// Get returns the worker or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// ListActiveWithAvailability returns workers with operational status
	// Active and an active account, each with its availability loaded.
	ListActiveWithAvailability(ctx context.Context) ([]*worker.Worker, error)

	// AdjustAcceptanceRate adds delta to the acceptance rate, clamped to [0,1].
	AdjustAcceptanceRate(ctx context.Context, id kernel.UUID, delta float64) error

	// IncrementAcceptedJobs adds one to the accepted-job counter.
	IncrementAcceptedJobs(ctx context.Context, id kernel.UUID) error
}
