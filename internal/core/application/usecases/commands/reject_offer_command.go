package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/guard"
)

var ErrRejectOfferCommandIsNotConstructed = errors.New(
	"RejectOfferCommand must be created via NewRejectOfferCommand constructor",
)

// RejectOfferCommand declines an offer. With rematch set the next candidate
// is offered the job immediately instead of waiting for the sweep.
type RejectOfferCommand struct {
	assignmentID kernel.UUID
	workerID     kernel.UUID
	rematch      bool
	guard        guard.ConstructorGuard
}

func NewRejectOfferCommand(assignmentID, workerID kernel.UUID, rematch bool) (RejectOfferCommand, error) {
	if err := errors.Join(assignmentID.Validate(), workerID.Validate()); err != nil {
		return RejectOfferCommand{}, err
	}
	return RejectOfferCommand{
		assignmentID: assignmentID,
		workerID:     workerID,
		rematch:      rematch,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RejectOfferCommand) Validate() error {
	return c.guard.Validate(ErrRejectOfferCommandIsNotConstructed)
}

func (c RejectOfferCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c RejectOfferCommand) WorkerID() kernel.UUID     { return c.workerID }
func (c RejectOfferCommand) Rematch() bool             { return c.rematch }
