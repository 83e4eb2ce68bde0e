package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
)

// SweepReport counts what one sweep did.
type SweepReport struct {
	// Scanned is the number of stale offers listed.
	Scanned int
	// Expired offers were moved to Expired and penalised.
	Expired int
	// Cancelled offers belonged to a job that was taken meanwhile; they are
	// closed without a penalty.
	Cancelled int
	// Skipped offers were closed by someone else before the sweep got to them.
	Skipped int
	// Reoffered jobs received a fresh offer.
	Reoffered int
	// Unmatched jobs had no candidate left.
	Unmatched int
	// Failed counts offers that could not be closed and jobs that could not
	// be re-matched. An offer stays Pending and is listed again next sweep.
	// A job stays Assigned without an open offer and is re-matched by the
	// stranded pass of the next sweep.
	Failed int
}

type closeOutcome int

const (
	offerSkipped closeOutcome = iota
	offerExpired
	offerCancelled
)

// SweepExpiredOffersCommandHandler expires stale offers, penalises the
// silent worker and re-offers the job.
//
// Each stale offer is handled in its own transaction with the same
// conditional write as accept, so a late accept and the sweep cannot both
// win, and re-running a sweep never penalises twice. Re-matching happens in a
// separate transaction after the expiry is committed. After the stale offers
// every Assigned job left without a Pending offer is re-matched as well.
type SweepExpiredOffersCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	rematcher  rematcher
	penalty    float64
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewSweepExpiredOffersCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	finder services.CandidateFinder,
	settings services.Settings,
	notifier ports.Notifier,
	logger *slog.Logger,
) SweepExpiredOffersCommandHandler {
	logger = logger.With("component", "offer_sweeper")
	return SweepExpiredOffersCommandHandler{
		uowFactory: uowFactory,
		rematcher: rematcher{
			uowFactory: uowFactory,
			writer:     offerWriter{finder: finder, offerWindow: settings.OfferWindow},
			notifier:   notifier,
			logger:     logger,
		},
		penalty:  settings.NoResponsePenalty,
		notifier: notifier,
		logger:   logger,
	}
}

// Handle returns an error only when the stale offers cannot be listed.
func (h SweepExpiredOffersCommandHandler) Handle(ctx context.Context, command SweepExpiredOffersCommand) (SweepReport, error) {
	if err := command.Validate(); err != nil {
		return SweepReport{}, err
	}
	now := command.Now()

	stale, err := h.uowFactory.Create().AssignmentRepository().ListExpiredBefore(ctx, now)
	if err != nil {
		return SweepReport{}, fmt.Errorf("list expired offers: %w", err)
	}

	report := SweepReport{Scanned: len(stale)}
	for i, offer := range stale {
		if ctx.Err() != nil {
			report.Failed += len(stale) - i
			break
		}

		outcome, closeErr := h.closeStale(ctx, offer, now)
		switch {
		case closeErr != nil:
			report.Failed++
			h.logger.ErrorContext(ctx, "expire offer failed",
				"assignment_id", offer.ID().String(), "error", closeErr)
		case outcome == offerSkipped:
			report.Skipped++
		case outcome == offerCancelled:
			report.Cancelled++
			notify(ctx, h.notifier, h.logger, offerNotification(ports.OfferCancelled, offer))
		default:
			report.Expired++
			notify(ctx, h.notifier, h.logger, offerNotification(ports.OfferExpired, offer))
			h.rematch(ctx, &report, offer.JobID(), now)
		}
	}

	if ctx.Err() == nil {
		h.rematchStranded(ctx, &report, now)
	}

	if report != (SweepReport{}) {
		h.logger.InfoContext(ctx, "sweep finished",
			"scanned", report.Scanned,
			"expired", report.Expired,
			"cancelled", report.Cancelled,
			"skipped", report.Skipped,
			"reoffered", report.Reoffered,
			"unmatched", report.Unmatched,
			"failed", report.Failed,
		)
	}
	return report, nil
}

// closeStale expires a stale offer and penalises its worker, or cancels it
// without a penalty when the job is no longer offerable.
func (h SweepExpiredOffersCommandHandler) closeStale(ctx context.Context, offer *assignment.Assignment, now time.Time) (closeOutcome, error) {
	if !offer.IsExpiredAt(now) {
		return offerSkipped, nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return offerSkipped, err
	}
	defer rollback(ctx, uow)

	j, err := uow.JobRepository().Get(ctx, offer.JobID())
	if err != nil {
		return offerSkipped, err
	}

	outcome := offerExpired
	if j.IsOfferable() {
		err = offer.Expire(now)
	} else {
		outcome = offerCancelled
		err = offer.Cancel(now)
	}
	if err != nil {
		return offerSkipped, err
	}

	won, err := uow.AssignmentRepository().CompareAndSwapStatus(ctx, offer, assignment.Pending)
	if err != nil || !won {
		return offerSkipped, err
	}

	if outcome == offerExpired {
		if err = uow.WorkerRepository().AdjustAcceptanceRate(ctx, offer.WorkerID(), -h.penalty); err != nil {
			return offerSkipped, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return offerSkipped, err
	}
	return outcome, nil
}

// rematchStranded re-matches Assigned jobs that lost their last open offer
// without getting a new one, such as after a failed rematch or a crash
// between the expiry and the rematch.
func (h SweepExpiredOffersCommandHandler) rematchStranded(ctx context.Context, report *SweepReport, now time.Time) {
	stranded, err := h.uowFactory.Create().JobRepository().ListStranded(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list stranded jobs failed", "error", err)
		return
	}

	for _, jobID := range stranded {
		if ctx.Err() != nil {
			return
		}
		h.rematch(ctx, report, jobID, now)
	}
}

func (h SweepExpiredOffersCommandHandler) rematch(ctx context.Context, report *SweepReport, jobID kernel.UUID, now time.Time) {
	outcome, _, err := h.rematcher.rematch(ctx, jobID, now)
	switch {
	case err != nil:
		report.Failed++
		h.logger.ErrorContext(ctx, "rematch failed", "job_id", jobID.String(), "error", err)
	case outcome == RematchReoffered:
		report.Reoffered++
	case outcome == RematchUnmatched:
		report.Unmatched++
	}
}
