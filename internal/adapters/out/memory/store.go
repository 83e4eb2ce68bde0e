// Package memory implements the ports in process memory with the same
// conditional-write semantics as the postgres adapter.
//
// A Store holds a single lock. A unit of work takes it in Begin and keeps it
// until Commit or Rollback, so transactions run one at a time and Rollback
// restores the snapshot taken in Begin. Calls made outside a transaction take
// the lock for one operation.
//
// Usage:
//
//	store := memory.NewStore()
//	handler := commands.NewAcceptOfferCommandHandler(store, clock, notifier, logger)
//
// A goroutine holding an open unit of work must not call another one on the
// same store.
package memory

import (
	"context"
	"errors"
	"time"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/worker"
	"jobmatch/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback without a prior Begin.
var ErrNoTransaction = errors.New("no transaction in progress")

// Store is the shared state behind every UnitOfWork it creates.
type Store struct {
	sem   chan struct{}
	state state
}

// state holds immutable jobs and workers by pointer and offers by value, so
// a shallow copy is a full snapshot.
type state struct {
	jobs    map[kernel.UUID]*job.Job
	workers map[kernel.UUID]*worker.Worker
	offers  map[kernel.UUID]offerRecord
}

type offerRecord struct {
	id         kernel.UUID
	jobID      kernel.UUID
	workerID   kernel.UUID
	status     assignment.Status
	matchScore float64
	expiresAt  time.Time
	acceptedAt *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

func NewStore() *Store {
	return &Store{
		sem: make(chan struct{}, 1),
		state: state{
			jobs:    make(map[kernel.UUID]*job.Job),
			workers: make(map[kernel.UUID]*worker.Worker),
			offers:  make(map[kernel.UUID]offerRecord),
		},
	}
}

// Create implements ports.UnitOfWorkFactory.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.sem
}

func (st state) clone() state {
	c := state{
		jobs:    make(map[kernel.UUID]*job.Job, len(st.jobs)),
		workers: make(map[kernel.UUID]*worker.Worker, len(st.workers)),
		offers:  make(map[kernel.UUID]offerRecord, len(st.offers)),
	}
	for id, j := range st.jobs {
		c.jobs[id] = j
	}
	for id, w := range st.workers {
		c.workers[id] = w
	}
	for id, o := range st.offers {
		c.offers[id] = o
	}
	return c
}

func recordOf(a *assignment.Assignment) offerRecord {
	return offerRecord{
		id:         a.ID(),
		jobID:      a.JobID(),
		workerID:   a.WorkerID(),
		status:     a.Status(),
		matchScore: a.MatchScore(),
		expiresAt:  a.ExpiresAt(),
		acceptedAt: copyTime(a.AcceptedAt()),
		createdAt:  a.CreatedAt(),
		updatedAt:  a.UpdatedAt(),
	}
}

func (r offerRecord) toDomain() (*assignment.Assignment, error) {
	return assignment.RestoreAssignment(r.id, r.jobID, r.workerID, r.status, r.matchScore,
		r.expiresAt, copyTime(r.acceptedAt), r.createdAt, r.updatedAt)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
