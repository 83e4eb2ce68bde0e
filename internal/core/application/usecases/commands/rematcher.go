package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
)

// RematchOutcome tells what a rematch did for a job.
type RematchOutcome int

const (
	// RematchSkipped: the job is closed or still has an open offer.
	RematchSkipped RematchOutcome = iota
	// RematchReoffered: a new offer went to the next candidate.
	RematchReoffered
	// RematchUnmatched: nobody is left; the job went back to Pending.
	RematchUnmatched
)

// rematcher issues the next offer for a job that lost its last open offer.
// It runs in a fresh unit of work and holds no lock from the transition
// that triggered it.
type rematcher struct {
	uowFactory ports.UnitOfWorkFactory
	writer     offerWriter
	notifier   ports.Notifier
	logger     *slog.Logger
}

func (r rematcher) rematch(ctx context.Context, jobID kernel.UUID, now time.Time) (RematchOutcome, *assignment.Assignment, error) {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RematchSkipped, nil, err
	}
	defer rollback(ctx, uow)

	j, err := uow.JobRepository().Get(ctx, jobID)
	if err != nil {
		return RematchSkipped, nil, err
	}
	if !j.IsOfferable() {
		return RematchSkipped, nil, nil
	}

	siblings, err := uow.AssignmentRepository().ListByJob(ctx, jobID)
	if err != nil {
		return RematchSkipped, nil, err
	}
	if hasOpenOffer(siblings) {
		return RematchSkipped, nil, nil
	}

	offer, best, err := r.writer.dispatch(ctx, uow, j, siblings, now)
	switch {
	case errors.Is(err, services.ErrNoCandidates):
		return r.unmatched(ctx, uow, j, now)
	case err != nil:
		return RematchSkipped, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RematchSkipped, nil, err
	}

	r.logger.InfoContext(ctx, "job reoffered",
		"job_id", jobID.String(),
		"worker_id", best.Worker.ID().String(),
		"score", best.Score.Final,
	)
	notify(ctx, r.notifier, r.logger, offerNotification(ports.OfferExtended, offer))
	return RematchReoffered, offer, nil
}

func (r rematcher) unmatched(ctx context.Context, uow ports.UnitOfWork, j *job.Job, now time.Time) (RematchOutcome, *assignment.Assignment, error) {
	if _, err := uow.JobRepository().CompareAndSwapStatus(ctx, j.ID(), job.Pending, job.Assigned); err != nil {
		return RematchSkipped, nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return RematchSkipped, nil, err
	}

	r.logger.WarnContext(ctx, "job unmatched", "job_id", j.ID().String())
	notify(ctx, r.notifier, r.logger, ports.Notification{Kind: ports.JobUnmatched, JobID: j.ID(), At: now})
	return RematchUnmatched, nil, nil
}
