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

// RejectOfferResult carries the rejected offer and, when a rematch was
// requested, the offer that replaced it.
type RejectOfferResult struct {
	Assignment *assignment.Assignment
	Rematch    RematchOutcome
	NextOffer  *assignment.Assignment
}

// RejectOfferCommandHandler moves a Pending offer to Rejected.
type RejectOfferCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	rematcher  rematcher
	clock      ports.Clock
	logger     *slog.Logger
}

func NewRejectOfferCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	finder services.CandidateFinder,
	settings services.Settings,
	clock ports.Clock,
	notifier ports.Notifier,
	logger *slog.Logger,
) RejectOfferCommandHandler {
	logger = logger.With("component", "reject_offer")
	return RejectOfferCommandHandler{
		uowFactory: uowFactory,
		rematcher: rematcher{
			uowFactory: uowFactory,
			writer:     offerWriter{finder: finder, offerWindow: settings.OfferWindow},
			notifier:   notifier,
			logger:     logger,
		},
		clock:  clock,
		logger: logger,
	}
}

func (h RejectOfferCommandHandler) Handle(ctx context.Context, command RejectOfferCommand) (RejectOfferResult, error) {
	if err := command.Validate(); err != nil {
		return RejectOfferResult{}, err
	}

	offer, err := h.reject(ctx, command)
	if err != nil {
		return RejectOfferResult{}, err
	}

	result := RejectOfferResult{Assignment: offer}
	if !command.Rematch() {
		return result, nil
	}

	// The rejection is already committed; a failed rematch is left to the sweep.
	outcome, next, err := h.rematcher.rematch(ctx, offer.JobID(), h.clock.Now())
	if err != nil {
		h.logger.WarnContext(ctx, "rematch after reject failed", "job_id", offer.JobID().String(), "error", err)
		return result, nil
	}
	result.Rematch = outcome
	result.NextOffer = next
	return result, nil
}

func (h RejectOfferCommandHandler) reject(ctx context.Context, command RejectOfferCommand) (*assignment.Assignment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer rollback(ctx, uow)

	offers := uow.AssignmentRepository()
	offer, err := offers.Get(ctx, command.AssignmentID())
	if err != nil {
		return nil, err
	}

	if err = offer.Reject(command.WorkerID(), h.clock.Now()); err != nil {
		return nil, err
	}

	won, err := offers.CompareAndSwapStatus(ctx, offer, assignment.Pending)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, h.lostRace(ctx, offers, offer)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return offer, nil
}

// lostRace reloads the offer to tell a concurrent close apart from a stale caller.
func (h RejectOfferCommandHandler) lostRace(ctx context.Context, offers ports.AssignmentRepository, offer *assignment.Assignment) error {
	current, err := offers.Get(ctx, offer.ID())
	if err != nil {
		return err
	}
	cause := fmt.Errorf("offer became %s", current.Status())
	switch current.Status() {
	case assignment.Expired, assignment.Cancelled, assignment.Accepted:
		return errs.NewAlreadyClaimedErrorWithCause("offer", offer.ID().String(), cause)
	default:
		return errs.NewInvalidStateErrorWithCause("offer status", cause)
	}
}
