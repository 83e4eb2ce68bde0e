// Package ports defines the contracts between the matching core and its
// infrastructure: repositories, the unit of work, notifications and time.
package ports

import (
	"context"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
)

// JobRepository is the persistence contract for jobs. The core never rewrites
// a job as a whole; it only moves the status with a compare-and-swap.
type JobRepository interface {
	// Add persists a new job. Used by the booking flow and by tests.
	Add(ctx context.Context, aggregate *job.Job) error

	// Get returns the job or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// CompareAndSwapStatus sets the status to next only if the stored status
	// is one of expected, as a single conditional write. It reports false,
	// without error, when the precondition no longer holds or the job is gone.
	//
	// Example:
	//   won, err := repo.CompareAndSwapStatus(ctx, jobID, job.Accepted, job.Pending, job.Assigned)
	//   if err != nil {
	//       return err
	//   }
	//   if !won {
	//       // someone else moved the job first
	//   }
	CompareAndSwapStatus(ctx context.Context, id kernel.UUID, next job.Status, expected ...job.Status) (bool, error)

	// ListStranded returns the ids of Assigned jobs that have no Pending
	// offer left, ordered by id.
	ListStranded(ctx context.Context) ([]kernel.UUID, error)
}
