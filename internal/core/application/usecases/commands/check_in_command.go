package commands

import (
	"errors"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/guard"
)

var ErrCheckInCommandIsNotConstructed = errors.New(
	"CheckInCommand must be created via NewCheckInCommand constructor",
)

// CheckInCommand is a worker's on-site report at job start.
type CheckInCommand struct {
	jobID    kernel.UUID
	workerID kernel.UUID
	reported kernel.Location
	guard    guard.ConstructorGuard
}

func NewCheckInCommand(jobID, workerID kernel.UUID, reported kernel.Location) (CheckInCommand, error) {
	if err := errors.Join(jobID.Validate(), workerID.Validate(), reported.Validate()); err != nil {
		return CheckInCommand{}, err
	}
	return CheckInCommand{
		jobID:    jobID,
		workerID: workerID,
		reported: reported,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CheckInCommand) Validate() error {
	return c.guard.Validate(ErrCheckInCommandIsNotConstructed)
}

func (c CheckInCommand) JobID() kernel.UUID        { return c.jobID }
func (c CheckInCommand) WorkerID() kernel.UUID     { return c.workerID }
func (c CheckInCommand) Reported() kernel.Location { return c.reported }
