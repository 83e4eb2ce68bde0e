package ports

import (
	"context"
	"time"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/kernel"
)

// AssignmentRepository is the persistence contract for offers.
type AssignmentRepository interface {
	// Add persists a new offer. A second Pending offer for the same job and
	// worker is rejected with errs.ErrInvalidState.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Get returns the offer or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// CompareAndSwapStatus writes the status, acceptedAt and updatedAt of
	// aggregate only if the stored status still equals expected. False means
	// the race was lost.
	CompareAndSwapStatus(ctx context.Context, aggregate *assignment.Assignment, expected assignment.Status) (bool, error)

	// ListByJob returns every offer ever made for the job, oldest first.
	ListByJob(ctx context.Context, jobID kernel.UUID) ([]*assignment.Assignment, error)

	// ListExpiredBefore returns Pending offers whose expiresAt is before now.
	ListExpiredBefore(ctx context.Context, now time.Time) ([]*assignment.Assignment, error)

	// CancelPendingForJob moves every Pending offer of the job except exceptID
	// to Cancelled and returns the offers it changed.
	CancelPendingForJob(ctx context.Context, jobID, exceptID kernel.UUID, now time.Time) ([]*assignment.Assignment, error)
}
