package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/guard"
)

var ErrCompleteJobCommandIsNotConstructed = errors.New(
	"CompleteJobCommand must be created via NewCompleteJobCommand constructor",
)

// CompleteJobCommand closes a job the caller is executing.
type CompleteJobCommand struct {
	jobID    kernel.UUID
	workerID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewCompleteJobCommand(jobID, workerID kernel.UUID) (CompleteJobCommand, error) {
	if err := errors.Join(jobID.Validate(), workerID.Validate()); err != nil {
		return CompleteJobCommand{}, err
	}
	return CompleteJobCommand{jobID: jobID, workerID: workerID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteJobCommand) Validate() error {
	return c.guard.Validate(ErrCompleteJobCommandIsNotConstructed)
}

func (c CompleteJobCommand) JobID() kernel.UUID    { return c.jobID }
func (c CompleteJobCommand) WorkerID() kernel.UUID { return c.workerID }
