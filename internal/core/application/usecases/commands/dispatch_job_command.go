package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/guard"
)

var ErrDispatchJobCommandIsNotConstructed = errors.New(
	"DispatchJobCommand must be created via NewDispatchJobCommand constructor",
)

// DispatchJobCommand offers the job to the best candidate who has not been
// offered it before.
type DispatchJobCommand struct {
	jobID kernel.UUID
	guard guard.ConstructorGuard
}

func NewDispatchJobCommand(jobID kernel.UUID) (DispatchJobCommand, error) {
	if err := jobID.Validate(); err != nil {
		return DispatchJobCommand{}, err
	}
	return DispatchJobCommand{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (c DispatchJobCommand) Validate() error {
	return c.guard.Validate(ErrDispatchJobCommandIsNotConstructed)
}

func (c DispatchJobCommand) JobID() kernel.UUID { return c.jobID }
