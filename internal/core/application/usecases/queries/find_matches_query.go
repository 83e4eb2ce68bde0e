// Package queries contains read operations. They never change state and
// never open a transaction.
package queries

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

// MaxMatchesLimit caps the candidates a single query may return.
const MaxMatchesLimit = 100

var ErrFindMatchesQueryIsNotConstructed = errors.New(
	"FindMatchesQuery must be created via NewFindMatchesQuery constructor",
)

// FindMatchesQuery ranks the workers who could take a job.
//
// Example:
//
//	query, err := queries.NewFindMatchesQuery(jobID, []kernel.UUID{alreadyAsked}, 10)
//	candidates, err := handler.Handle(ctx, query)
type FindMatchesQuery struct {
	jobID   kernel.UUID
	exclude kernel.UUIDSet
	limit   int
	guard   guard.ConstructorGuard
}

// NewFindMatchesQuery builds the query. A zero limit returns every candidate.
func NewFindMatchesQuery(jobID kernel.UUID, exclude []kernel.UUID, limit int) (FindMatchesQuery, error) {
	if err := jobID.Validate(); err != nil {
		return FindMatchesQuery{}, err
	}
	if limit < 0 || limit > MaxMatchesLimit {
		return FindMatchesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxMatchesLimit)
	}
	return FindMatchesQuery{
		jobID:   jobID,
		exclude: kernel.NewUUIDSet(exclude...),
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q FindMatchesQuery) Validate() error {
	return q.guard.Validate(ErrFindMatchesQueryIsNotConstructed)
}

func (q FindMatchesQuery) JobID() kernel.UUID      { return q.jobID }
func (q FindMatchesQuery) Exclude() kernel.UUIDSet { return q.exclude }
func (q FindMatchesQuery) Limit() int              { return q.limit }
