package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/guard"
)

var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand is a worker's attempt to claim the job behind an offer.
// workerID is the authenticated caller, not a value taken from the offer.
type AcceptOfferCommand struct {
	assignmentID kernel.UUID
	workerID     kernel.UUID
	guard        guard.ConstructorGuard
}

func NewAcceptOfferCommand(assignmentID, workerID kernel.UUID) (AcceptOfferCommand, error) {
	if err := errors.Join(assignmentID.Validate(), workerID.Validate()); err != nil {
		return AcceptOfferCommand{}, err
	}
	return AcceptOfferCommand{
		assignmentID: assignmentID,
		workerID:     workerID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

func (c AcceptOfferCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c AcceptOfferCommand) WorkerID() kernel.UUID     { return c.workerID }
