package memory

import (
	"context"

	"jobmatch/internal/core/ports"
)

// UnitOfWork is a serialised transaction over a Store.
type UnitOfWork struct {
	store  *Store
	inTx   bool
	backup state
}

// Begin waits for the store lock or for ctx. A second call is a no-op.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return nil
	}
	if err := u.store.acquire(ctx); err != nil {
		return err
	}
	u.backup = u.store.state.clone()
	u.inTx = true
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.inTx {
		return ErrNoTransaction
	}
	u.finish()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.inTx {
		return ErrNoTransaction
	}
	u.store.state = u.backup
	u.finish()
	return nil
}

func (u *UnitOfWork) finish() {
	u.inTx = false
	u.backup = state{}
	u.store.release()
}

func (u *UnitOfWork) JobRepository() ports.JobRepository {
	return &JobRepository{uow: u}
}

func (u *UnitOfWork) WorkerRepository() ports.WorkerRepository {
	return &WorkerRepository{uow: u}
}

func (u *UnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return &AssignmentRepository{uow: u}
}

// run applies fn to the store state, inside the open transaction or under
// the lock for this call alone.
func (u *UnitOfWork) run(ctx context.Context, fn func(st *state) error) error {
	if u.inTx {
		return fn(&u.store.state)
	}
	if err := u.store.acquire(ctx); err != nil {
		return err
	}
	defer u.store.release()
	return fn(&u.store.state)
}
