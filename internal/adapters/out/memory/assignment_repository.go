package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
)

type AssignmentRepository struct {
	uow *UnitOfWork
}

// Add enforces one Pending offer per job and worker pair.
func (r *AssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.run(ctx, func(st *state) error {
		if _, ok := st.offers[aggregate.ID()]; ok {
			return errs.NewInvalidStateErrorWithCause("offer", fmt.Errorf("offer %s already exists", aggregate.ID()))
		}
		if aggregate.Status() == assignment.Pending {
			for _, o := range st.offers {
				if o.status == assignment.Pending && o.jobID == aggregate.JobID() && o.workerID == aggregate.WorkerID() {
					return errs.NewInvalidStateErrorWithCause("offer",
						fmt.Errorf("worker %s already holds pending offer %s for job %s", o.workerID, o.id, o.jobID))
				}
			}
		}
		st.offers[aggregate.ID()] = recordOf(aggregate)
		return nil
	})
}

func (r *AssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var found offerRecord
	err := r.uow.run(ctx, func(st *state) error {
		o, ok := st.offers[id]
		if !ok {
			return errs.NewObjectNotFoundError("offer", id.String())
		}
		found = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found.toDomain()
}

func (r *AssignmentRepository) CompareAndSwapStatus(
	ctx context.Context,
	aggregate *assignment.Assignment,
	expected assignment.Status,
) (bool, error) {
	if err := errors.Join(aggregate.Validate(), expected.Validate()); err != nil {
		return false, err
	}

	won := false
	err := r.uow.run(ctx, func(st *state) error {
		o, ok := st.offers[aggregate.ID()]
		if !ok || o.status != expected {
			return nil
		}
		o.status = aggregate.Status()
		o.acceptedAt = copyTime(aggregate.AcceptedAt())
		o.updatedAt = aggregate.UpdatedAt()
		st.offers[o.id] = o
		won = true
		return nil
	})
	return won, err
}

func (r *AssignmentRepository) ListByJob(ctx context.Context, jobID kernel.UUID) ([]*assignment.Assignment, error) {
	if err := jobID.Validate(); err != nil {
		return nil, err
	}

	records, err := r.filter(ctx, func(o offerRecord) bool { return o.jobID == jobID })
	if err != nil {
		return nil, err
	}
	return toDomainSorted(records, func(a, b offerRecord) int {
		if c := a.createdAt.Compare(b.createdAt); c != 0 {
			return c
		}
		return compareIDs(a.id, b.id)
	})
}

func (r *AssignmentRepository) ListExpiredBefore(ctx context.Context, now time.Time) ([]*assignment.Assignment, error) {
	records, err := r.filter(ctx, func(o offerRecord) bool {
		return o.status == assignment.Pending && o.expiresAt.Before(now)
	})
	if err != nil {
		return nil, err
	}
	return toDomainSorted(records, func(a, b offerRecord) int {
		if c := a.expiresAt.Compare(b.expiresAt); c != 0 {
			return c
		}
		return compareIDs(a.id, b.id)
	})
}

func (r *AssignmentRepository) CancelPendingForJob(
	ctx context.Context,
	jobID, exceptID kernel.UUID,
	now time.Time,
) ([]*assignment.Assignment, error) {
	if err := errors.Join(jobID.Validate(), exceptID.Validate()); err != nil {
		return nil, err
	}

	var changed []offerRecord
	err := r.uow.run(ctx, func(st *state) error {
		for id, o := range st.offers {
			if o.jobID != jobID || o.status != assignment.Pending || o.id == exceptID {
				continue
			}
			o.status = assignment.Cancelled
			o.updatedAt = now
			st.offers[id] = o
			changed = append(changed, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDomainSorted(changed, func(a, b offerRecord) int { return compareIDs(a.id, b.id) })
}

func (r *AssignmentRepository) filter(ctx context.Context, keep func(offerRecord) bool) ([]offerRecord, error) {
	var records []offerRecord
	err := r.uow.run(ctx, func(st *state) error {
		for _, o := range st.offers {
			if keep(o) {
				records = append(records, o)
			}
		}
		return nil
	})
	return records, err
}

func toDomainSorted(records []offerRecord, order func(a, b offerRecord) int) ([]*assignment.Assignment, error) {
	slices.SortFunc(records, order)
	offers := make([]*assignment.Assignment, 0, len(records))
	for _, o := range records {
		a, err := o.toDomain()
		if err != nil {
			return nil, err
		}
		offers = append(offers, a)
	}
	return offers, nil
}
