package memory

import (
	"context"
	"fmt"
	"math"
	"slices"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/worker"
	"jobmatch/internal/pkg/errs"
)

type WorkerRepository struct {
	uow *UnitOfWork
}

func (r *WorkerRepository) Add(ctx context.Context, aggregate *worker.Worker) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.run(ctx, func(st *state) error {
		if _, ok := st.workers[aggregate.ID()]; ok {
			return errs.NewInvalidStateErrorWithCause("worker", fmt.Errorf("worker %s already exists", aggregate.ID()))
		}
		st.workers[aggregate.ID()] = aggregate
		return nil
	})
}

func (r *WorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var found *worker.Worker
	err := r.uow.run(ctx, func(st *state) error {
		w, ok := st.workers[id]
		if !ok {
			return errs.NewObjectNotFoundError("worker", id.String())
		}
		found = w
		return nil
	})
	return found, err
}

// ListActiveWithAvailability orders workers by ID like the SQL adapter.
func (r *WorkerRepository) ListActiveWithAvailability(ctx context.Context) ([]*worker.Worker, error) {
	var workers []*worker.Worker
	err := r.uow.run(ctx, func(st *state) error {
		workers = make([]*worker.Worker, 0, len(st.workers))
		for _, w := range st.workers {
			if w.Status() == worker.Active && w.AccountActive() {
				workers = append(workers, w)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(workers, func(a, b *worker.Worker) int {
		return compareIDs(a.ID(), b.ID())
	})
	return workers, nil
}

func (r *WorkerRepository) AdjustAcceptanceRate(ctx context.Context, id kernel.UUID, delta float64) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return errs.NewValueIsInvalidError("delta")
	}

	return r.update(ctx, id, func(rep worker.Reputation) (worker.Reputation, error) {
		rate := math.Max(0, math.Min(1, rep.AcceptanceRate()+delta))
		return worker.NewReputation(rep.Rating(), rate, rep.PunctualityRate(), rep.AcceptedJobs())
	})
}

func (r *WorkerRepository) IncrementAcceptedJobs(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.update(ctx, id, func(rep worker.Reputation) (worker.Reputation, error) {
		return worker.NewReputation(rep.Rating(), rep.AcceptanceRate(), rep.PunctualityRate(), rep.AcceptedJobs()+1)
	})
}

func (r *WorkerRepository) update(
	ctx context.Context,
	id kernel.UUID,
	change func(worker.Reputation) (worker.Reputation, error),
) error {
	return r.uow.run(ctx, func(st *state) error {
		w, ok := st.workers[id]
		if !ok {
			return errs.NewObjectNotFoundError("worker", id.String())
		}
		rep, err := change(w.Reputation())
		if err != nil {
			return err
		}
		updated, err := worker.RestoreWorker(w.ID(), w.Name(), w.Status(), w.AccountActive(),
			w.Home(), w.ServiceRadiusKm(), rep, w.Availability())
		if err != nil {
			return err
		}
		st.workers[id] = updated
		return nil
	})
}

func compareIDs(a, b kernel.UUID) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
