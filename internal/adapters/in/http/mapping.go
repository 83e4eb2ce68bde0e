package http

import (
	"errors"

	"jobmatch/internal/adapters/in/http/api"
	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/services"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toUUIDs(a, b openapi_types.UUID) (kernel.UUID, kernel.UUID, error) {
	first, errA := toUUID(a)
	second, errB := toUUID(b)
	return first, second, errors.Join(errA, errB)
}

func toMatch(c services.Candidate) api.Match {
	return api.Match{
		WorkerId:   c.Worker.ID().Bytes(),
		Name:       c.Worker.Name(),
		DistanceKm: c.DistanceKm,
		Score: api.ScoreBreakdown{
			Rating:      c.Score.Rating,
			Distance:    c.Score.Distance,
			Acceptance:  c.Score.Acceptance,
			Punctuality: c.Score.Punctuality,
			Final:       c.Score.Final,
		},
	}
}

func toOffer(a *assignment.Assignment) api.Offer {
	return api.Offer{
		Id:         a.ID().Bytes(),
		JobId:      a.JobID().Bytes(),
		WorkerId:   a.WorkerID().Bytes(),
		Status:     api.OfferStatus(a.Status().String()),
		MatchScore: a.MatchScore(),
		ExpiresAt:  a.ExpiresAt(),
		AcceptedAt: a.AcceptedAt(),
		CreatedAt:  a.CreatedAt(),
	}
}

func toRematch(outcome commands.RematchOutcome) api.RejectionRematch {
	switch outcome {
	case commands.RematchReoffered:
		return api.RejectionRematchREOFFERED
	case commands.RematchUnmatched:
		return api.RejectionRematchUNMATCHED
	default:
		return api.RejectionRematchSKIPPED
	}
}
