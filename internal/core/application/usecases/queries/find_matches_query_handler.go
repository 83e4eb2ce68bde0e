package queries

import (
	"context"

	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
)

// FindMatchesQueryHandler returns the ranked candidates for a job, best
// first, with the score breakdown of each.
type FindMatchesQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	finder     services.CandidateFinder
}

func NewFindMatchesQueryHandler(uowFactory ports.UnitOfWorkFactory, finder services.CandidateFinder) FindMatchesQueryHandler {
	return FindMatchesQueryHandler{uowFactory: uowFactory, finder: finder}
}

func (h FindMatchesQueryHandler) Handle(ctx context.Context, query FindMatchesQuery) ([]services.Candidate, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	j, err := uow.JobRepository().Get(ctx, query.JobID())
	if err != nil {
		return nil, err
	}

	workers, err := uow.WorkerRepository().ListActiveWithAvailability(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := h.finder.Rank(j, workers, query.Exclude())
	if err != nil {
		return nil, err
	}
	if query.Limit() > 0 && len(candidates) > query.Limit() {
		candidates = candidates[:query.Limit()]
	}
	return candidates, nil
}
