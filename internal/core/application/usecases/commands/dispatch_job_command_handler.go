package commands

import (
	"context"
	"log/slog"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
)

// DispatchJobResult is the offer made and the ranking entry that earned it.
type DispatchJobResult struct {
	Assignment *assignment.Assignment
	Candidate  services.Candidate
}

// DispatchJobCommandHandler is the booking-assignment entry point. It
// returns services.ErrNoCandidates when nobody eligible is left, leaving the
// job untouched.
type DispatchJobCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	writer     offerWriter
	clock      ports.Clock
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewDispatchJobCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	finder services.CandidateFinder,
	settings services.Settings,
	clock ports.Clock,
	notifier ports.Notifier,
	logger *slog.Logger,
) DispatchJobCommandHandler {
	return DispatchJobCommandHandler{
		uowFactory: uowFactory,
		writer:     offerWriter{finder: finder, offerWindow: settings.OfferWindow},
		clock:      clock,
		notifier:   notifier,
		logger:     logger.With("component", "dispatch_job"),
	}
}

func (h DispatchJobCommandHandler) Handle(ctx context.Context, command DispatchJobCommand) (DispatchJobResult, error) {
	if err := command.Validate(); err != nil {
		return DispatchJobResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchJobResult{}, err
	}
	defer rollback(ctx, uow)

	j, err := uow.JobRepository().Get(ctx, command.JobID())
	if err != nil {
		return DispatchJobResult{}, err
	}

	siblings, err := uow.AssignmentRepository().ListByJob(ctx, j.ID())
	if err != nil {
		return DispatchJobResult{}, err
	}

	offer, best, err := h.writer.dispatch(ctx, uow, j, siblings, h.clock.Now())
	if err != nil {
		return DispatchJobResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchJobResult{}, err
	}

	h.logger.InfoContext(ctx, "job dispatched",
		"job_id", j.ID().String(),
		"worker_id", best.Worker.ID().String(),
		"score", best.Score.Final,
		"distance_km", best.DistanceKm,
	)
	notify(ctx, h.notifier, h.logger, offerNotification(ports.OfferExtended, offer))

	return DispatchJobResult{Assignment: offer, Candidate: best}, nil
}
