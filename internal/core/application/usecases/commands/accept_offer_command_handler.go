package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"
)

// AcceptOfferResult describes a won race.
type AcceptOfferResult struct {
	Assignment *assignment.Assignment
	Cancelled  []*assignment.Assignment
}

// AcceptOfferCommandHandler resolves concurrent claims on a job to exactly
// one winner.
//
// Inside one transaction it moves the offer Pending -> Accepted and the job
// {Pending, Assigned} -> Accepted, each as a conditional write, and bumps the
// worker's accepted-job counter. If either write affects no row the
// transaction is rolled back and the caller gets errs.ErrAlreadyClaimed.
// After commit, and before returning, every other Pending offer for the job
// is cancelled.
//
// Example:
//
//	cmd, _ := commands.NewAcceptOfferCommand(offerID, callerID)
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrAlreadyClaimed):
//	    // "this job is no longer available"
//	case errors.Is(err, errs.ErrForbidden):
//	    // not the caller's offer
//	case err != nil:
//	    return err
//	}
type AcceptOfferCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewAcceptOfferCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	clock ports.Clock,
	notifier ports.Notifier,
	logger *slog.Logger,
) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
		logger:     logger.With("component", "accept_offer"),
	}
}

func (h AcceptOfferCommandHandler) Handle(ctx context.Context, command AcceptOfferCommand) (AcceptOfferResult, error) {
	if err := command.Validate(); err != nil {
		return AcceptOfferResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AcceptOfferResult{}, err
	}
	defer rollback(ctx, uow)

	offer, err := h.claim(ctx, uow, command)
	if err != nil {
		return AcceptOfferResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AcceptOfferResult{}, err
	}

	// The transaction is closed, so this runs as its own statement. Siblings
	// it misses are cancelled by the sweeper without a penalty.
	cancelled, err := uow.AssignmentRepository().CancelPendingForJob(ctx, offer.JobID(), offer.ID(), h.clock.Now())
	if err != nil {
		return AcceptOfferResult{}, fmt.Errorf("cancel sibling offers of job %s: %w", offer.JobID(), err)
	}

	notify(ctx, h.notifier, h.logger, offerNotification(ports.OfferAccepted, offer))
	for _, c := range cancelled {
		notify(ctx, h.notifier, h.logger, offerNotification(ports.OfferCancelled, c))
	}

	h.logger.InfoContext(ctx, "offer accepted",
		"assignment_id", offer.ID().String(),
		"job_id", offer.JobID().String(),
		"worker_id", offer.WorkerID().String(),
		"cancelled", len(cancelled),
	)

	return AcceptOfferResult{Assignment: offer, Cancelled: cancelled}, nil
}

func (h AcceptOfferCommandHandler) claim(
	ctx context.Context,
	uow ports.UnitOfWork,
	command AcceptOfferCommand,
) (*assignment.Assignment, error) {
	offers := uow.AssignmentRepository()
	jobs := uow.JobRepository()

	offer, err := offers.Get(ctx, command.AssignmentID())
	if err != nil {
		return nil, err
	}

	if err = offer.Accept(command.WorkerID(), h.clock.Now()); err != nil {
		return nil, err
	}

	j, err := jobs.Get(ctx, offer.JobID())
	if err != nil {
		return nil, err
	}
	if err = j.Status().ValidateAccept(); err != nil {
		return nil, err
	}

	won, err := offers.CompareAndSwapStatus(ctx, offer, assignment.Pending)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, errs.NewAlreadyClaimedErrorWithCause("offer", offer.ID().String(),
			errors.New("offer is no longer pending"))
	}

	won, err = jobs.CompareAndSwapStatus(ctx, offer.JobID(), job.Accepted, job.Pending, job.Assigned)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, errs.NewAlreadyClaimedErrorWithCause("job", offer.JobID().String(),
			errors.New("another offer was accepted first"))
	}

	if err = uow.WorkerRepository().IncrementAcceptedJobs(ctx, offer.WorkerID()); err != nil {
		return nil, err
	}

	return offer, nil
}
