package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
)

type JobRepository struct {
	uow *UnitOfWork
}

func (r *JobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.run(ctx, func(st *state) error {
		if _, ok := st.jobs[aggregate.ID()]; ok {
			return errs.NewInvalidStateErrorWithCause("job", fmt.Errorf("job %s already exists", aggregate.ID()))
		}
		st.jobs[aggregate.ID()] = aggregate
		return nil
	})
}

func (r *JobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var found *job.Job
	err := r.uow.run(ctx, func(st *state) error {
		j, ok := st.jobs[id]
		if !ok {
			return errs.NewObjectNotFoundError("job", id.String())
		}
		found = j
		return nil
	})
	return found, err
}

func (r *JobRepository) CompareAndSwapStatus(
	ctx context.Context,
	id kernel.UUID,
	next job.Status,
	expected ...job.Status,
) (bool, error) {
	if err := errors.Join(id.Validate(), next.Validate()); err != nil {
		return false, err
	}
	if len(expected) == 0 {
		return false, errs.NewValueIsRequiredError("expected")
	}

	won := false
	err := r.uow.run(ctx, func(st *state) error {
		current, ok := st.jobs[id]
		if !ok || !slices.Contains(expected, current.Status()) {
			return nil
		}
		updated, err := job.RestoreJob(current.ID(), current.Location(), current.ScheduledDate(), current.TimeWindow(), next)
		if err != nil {
			return err
		}
		st.jobs[id] = updated
		won = true
		return nil
	})
	return won, err
}

func (r *JobRepository) ListStranded(ctx context.Context) ([]kernel.UUID, error) {
	var ids []kernel.UUID
	err := r.uow.run(ctx, func(st *state) error {
		open := make(map[kernel.UUID]bool)
		for _, o := range st.offers {
			if o.status == assignment.Pending {
				open[o.jobID] = true
			}
		}
		for id, j := range st.jobs {
			if j.Status() == job.Assigned && !open[id] {
				ids = append(ids, id)
			}
		}
		return nil
	})
	slices.SortFunc(ids, compareIDs)
	return ids, err
}
