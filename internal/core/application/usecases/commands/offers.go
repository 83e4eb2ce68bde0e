package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"
)

// offerWriter extends offers inside an open unit of work. It is shared by
// the extend, dispatch, reject-with-rematch and sweep handlers.
type offerWriter struct {
	finder      services.CandidateFinder
	offerWindow time.Duration
}

// extend creates a Pending offer for workerID after checking the siblings,
// then moves the job to Assigned. The job update takes the job row, so an
// offer can never be committed after a concurrent accept has closed the job.
func (w offerWriter) extend(
	ctx context.Context,
	uow ports.UnitOfWork,
	j *job.Job,
	siblings []*assignment.Assignment,
	workerID kernel.UUID,
	score float64,
	now time.Time,
) (*assignment.Assignment, error) {
	if err := j.Status().ValidateOffer(); err != nil {
		return nil, err
	}
	if err := checkSiblings(siblings, workerID); err != nil {
		return nil, err
	}

	offer, err := assignment.NewOffer(j.ID(), workerID, score, now, w.offerWindow)
	if err != nil {
		return nil, err
	}
	if err = uow.AssignmentRepository().Add(ctx, offer); err != nil {
		return nil, err
	}

	won, err := uow.JobRepository().CompareAndSwapStatus(ctx, j.ID(), job.Assigned, job.Pending, job.Assigned)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, errs.NewInvalidStateErrorWithCause("job status",
			errors.New("job changed while the offer was being extended"))
	}

	return offer, nil
}

// dispatch offers the job to the best candidate not excluded by the siblings.
func (w offerWriter) dispatch(
	ctx context.Context,
	uow ports.UnitOfWork,
	j *job.Job,
	siblings []*assignment.Assignment,
	now time.Time,
) (*assignment.Assignment, services.Candidate, error) {
	if err := j.Status().ValidateOffer(); err != nil {
		return nil, services.Candidate{}, err
	}

	workers, err := uow.WorkerRepository().ListActiveWithAvailability(ctx)
	if err != nil {
		return nil, services.Candidate{}, err
	}

	best, err := w.finder.Best(j, workers, offeredWorkers(siblings))
	if err != nil {
		return nil, services.Candidate{}, err
	}

	offer, err := w.extend(ctx, uow, j, siblings, best.Worker.ID(), best.Score.Final, now)
	if err != nil {
		return nil, services.Candidate{}, err
	}
	return offer, best, nil
}

func checkSiblings(siblings []*assignment.Assignment, workerID kernel.UUID) error {
	for _, s := range siblings {
		switch {
		case s.Status() == assignment.Accepted:
			return errs.NewInvalidStateErrorWithCause("job",
				fmt.Errorf("offer %s was already accepted", s.ID()))
		case s.Status() == assignment.Pending && s.IsOwnedBy(workerID):
			return errs.NewInvalidStateErrorWithCause("offer",
				fmt.Errorf("worker %s already holds pending offer %s", workerID, s.ID()))
		}
	}
	return nil
}

// offeredWorkers lists every worker who was ever offered the job, whatever
// the outcome, so nobody receives a repeat offer.
func offeredWorkers(siblings []*assignment.Assignment) kernel.UUIDSet {
	set := kernel.NewUUIDSet()
	for _, s := range siblings {
		set.Add(s.WorkerID())
	}
	return set
}

// hasOpenOffer reports whether some sibling is Pending or Accepted.
func hasOpenOffer(siblings []*assignment.Assignment) bool {
	for _, s := range siblings {
		if s.Status() == assignment.Pending || s.Status() == assignment.Accepted {
			return true
		}
	}
	return false
}

func findAccepted(siblings []*assignment.Assignment) *assignment.Assignment {
	for _, s := range siblings {
		if s.Status() == assignment.Accepted {
			return s
		}
	}
	return nil
}
