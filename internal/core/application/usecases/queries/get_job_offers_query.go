package queries

import (
	"errors"
	"time"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/guard"
)

var ErrGetJobOffersQueryIsNotConstructed = errors.New(
	"GetJobOffersQuery must be created via NewGetJobOffersQuery constructor",
)

// GetJobOffersQuery lists the offer history of one job.
type GetJobOffersQuery struct {
	jobID kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetJobOffersQuery(jobID kernel.UUID) (GetJobOffersQuery, error) {
	if err := jobID.Validate(); err != nil {
		return GetJobOffersQuery{}, err
	}
	return GetJobOffersQuery{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetJobOffersQuery) Validate() error {
	return q.guard.Validate(ErrGetJobOffersQueryIsNotConstructed)
}

func (q GetJobOffersQuery) JobID() kernel.UUID { return q.jobID }

// GetJobOffersQueryResponse is one offer of the job in the read model.
type GetJobOffersQueryResponse struct {
	ID         kernel.UUID
	WorkerID   kernel.UUID
	WorkerName string
	Status     assignment.Status
	MatchScore float64
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	CreatedAt  time.Time
}
