package commands

import (
	"context"
	"fmt"
	"log/slog"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"
)

// ExtendOfferCommandHandler creates a Pending offer for one worker.
//
// Preconditions checked inside the transaction:
//   - the job exists and is Pending or Assigned
//   - the worker exists and is eligible
//   - no sibling offer is Accepted
//   - the worker holds no Pending offer for the job
//
// Example:
//
//	cmd, _ := commands.NewExtendOfferCommand(jobID, workerID, 0.91)
//	offer, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidState) {
//	    // job closed or duplicate offer
//	}
type ExtendOfferCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	writer     offerWriter
	clock      ports.Clock
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewExtendOfferCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	settings services.Settings,
	clock ports.Clock,
	notifier ports.Notifier,
	logger *slog.Logger,
) ExtendOfferCommandHandler {
	return ExtendOfferCommandHandler{
		uowFactory: uowFactory,
		writer:     offerWriter{offerWindow: settings.OfferWindow},
		clock:      clock,
		notifier:   notifier,
		logger:     logger.With("component", "extend_offer"),
	}
}

func (h ExtendOfferCommandHandler) Handle(ctx context.Context, command ExtendOfferCommand) (*assignment.Assignment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer rollback(ctx, uow)

	j, err := uow.JobRepository().Get(ctx, command.JobID())
	if err != nil {
		return nil, err
	}

	w, err := uow.WorkerRepository().Get(ctx, command.WorkerID())
	if err != nil {
		return nil, err
	}
	if !w.IsEligible() {
		return nil, errs.NewInvalidStateErrorWithCause("worker",
			fmt.Errorf("worker %s is %s and cannot receive offers", w.ID(), w.Status()))
	}

	siblings, err := uow.AssignmentRepository().ListByJob(ctx, j.ID())
	if err != nil {
		return nil, err
	}

	offer, err := h.writer.extend(ctx, uow, j, siblings, w.ID(), command.Score(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notify(ctx, h.notifier, h.logger, offerNotification(ports.OfferExtended, offer))
	return offer, nil
}

func offerNotification(kind ports.NotificationKind, a *assignment.Assignment) ports.Notification {
	return ports.Notification{
		Kind:         kind,
		JobID:        a.JobID(),
		WorkerID:     a.WorkerID(),
		AssignmentID: a.ID(),
		At:           a.UpdatedAt(),
	}
}
