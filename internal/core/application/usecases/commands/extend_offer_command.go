package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

var ErrExtendOfferCommandIsNotConstructed = errors.New(
	"ExtendOfferCommand must be created via NewExtendOfferCommand constructor",
)

// ExtendOfferCommand offers a job to a specific worker with the score that
// justified the offer.
type ExtendOfferCommand struct {
	jobID    kernel.UUID
	workerID kernel.UUID
	score    float64
	guard    guard.ConstructorGuard
}

func NewExtendOfferCommand(jobID, workerID kernel.UUID, score float64) (ExtendOfferCommand, error) {
	if err := errors.Join(jobID.Validate(), workerID.Validate()); err != nil {
		return ExtendOfferCommand{}, err
	}
	if !(score >= 0 && score <= 1) {
		return ExtendOfferCommand{}, errs.NewValueIsOutOfRangeError("score", score, 0, 1)
	}

	return ExtendOfferCommand{
		jobID:    jobID,
		workerID: workerID,
		score:    score,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ExtendOfferCommand) Validate() error {
	return c.guard.Validate(ErrExtendOfferCommandIsNotConstructed)
}

func (c ExtendOfferCommand) JobID() kernel.UUID    { return c.jobID }
func (c ExtendOfferCommand) WorkerID() kernel.UUID { return c.workerID }
func (c ExtendOfferCommand) Score() float64        { return c.score }
