package commands

import (
	"context"
	"errors"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"
)

// CompleteJobCommandHandler moves an InProgress job to Completed for the
// worker holding its Accepted offer.
type CompleteJobCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewCompleteJobCommandHandler(uowFactory ports.UnitOfWorkFactory) CompleteJobCommandHandler {
	return CompleteJobCommandHandler{uowFactory: uowFactory}
}

func (h CompleteJobCommandHandler) Handle(ctx context.Context, command CompleteJobCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer rollback(ctx, uow)

	j, err := loadAcceptedJob(ctx, uow, command.JobID(), command.WorkerID())
	if err != nil {
		return err
	}
	if err = j.Status().ValidateComplete(); err != nil {
		return err
	}

	won, err := uow.JobRepository().CompareAndSwapStatus(ctx, j.ID(), job.Completed, job.InProgress)
	if err != nil {
		return err
	}
	if !won {
		return errs.NewInvalidStateErrorWithCause("job status", errors.New("job is no longer in progress"))
	}

	return uow.Commit(ctx)
}
