package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/worker"
	"jobmatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) CompareAndSwapStatus(
	ctx context.Context,
	id kernel.UUID,
	next job.Status,
	expected ...job.Status,
) (bool, error) {
	args := m.Called(ctx, id, next, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepository) ListStranded(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Add(ctx context.Context, w *worker.Worker) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) ListActiveWithAvailability(ctx context.Context) ([]*worker.Worker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) AdjustAcceptanceRate(ctx context.Context, id kernel.UUID, delta float64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockWorkerRepository) IncrementAcceptedJobs(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) CompareAndSwapStatus(
	ctx context.Context,
	a *assignment.Assignment,
	expected assignment.Status,
) (bool, error) {
	args := m.Called(ctx, a, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) ListByJob(ctx context.Context, jobID kernel.UUID) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListExpiredBefore(ctx context.Context, now time.Time) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) CancelPendingForJob(
	ctx context.Context,
	jobID, exceptID kernel.UUID,
	now time.Time,
) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, jobID, exceptID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockUoW) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// fixture wires one unit of work to a fresh set of repository mocks.
// Repository accessors may be called any number of times.
type fixture struct {
	jobs     *MockJobRepository
	workers  *MockWorkerRepository
	offers   *MockAssignmentRepository
	uow      *MockUoW
	factory  *MockUoWFactory
	notifier *MockNotifier
}

func newFixture() *fixture {
	f := &fixture{
		jobs:     new(MockJobRepository),
		workers:  new(MockWorkerRepository),
		offers:   new(MockAssignmentRepository),
		uow:      new(MockUoW),
		factory:  new(MockUoWFactory),
		notifier: new(MockNotifier),
	}
	f.uow.On("JobRepository").Return(f.jobs).Maybe()
	f.uow.On("WorkerRepository").Return(f.workers).Maybe()
	f.uow.On("AssignmentRepository").Return(f.offers).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	f.factory.On("Create").Return(f.uow).Maybe()
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.jobs.AssertExpectations(t)
	f.workers.AssertExpectations(t)
	f.offers.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func notification(kind ports.NotificationKind) any {
	return mock.MatchedBy(func(n ports.Notification) bool { return n.Kind == kind })
}

var (
	// jobDate is a Wednesday.
	jobDate = time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)
	t0      = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	logger  = slog.New(slog.DiscardHandler)
)

func clockAt(at time.Time) ports.Clock {
	return ports.ClockFunc(func() time.Time { return at })
}

func mustLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func mustJob(t *testing.T, status job.Status) *job.Job {
	t.Helper()
	window, err := kernel.ParseTimeWindow("09:00-12:00")
	require.NoError(t, err)
	j, err := job.RestoreJob(kernel.NewUUID(), mustLocation(t, 28.5383, -81.3792), jobDate, window, status)
	require.NoError(t, err)
	return j
}

func mustWorker(t *testing.T, lat, lon float64, rating float64) *worker.Worker {
	t.Helper()
	window, err := kernel.ParseTimeWindow("08:00-18:00")
	require.NoError(t, err)
	slot, err := worker.NewAvailabilitySlot(kernel.Wednesday, window, true)
	require.NoError(t, err)
	availability, err := worker.NewAvailability(slot)
	require.NoError(t, err)
	rep, err := worker.NewReputation(rating, 1, 1, 0)
	require.NoError(t, err)
	w, err := worker.RestoreWorker(kernel.NewUUID(), "worker", worker.Active, true,
		mustLocation(t, lat, lon), 20, rep, availability)
	require.NoError(t, err)
	return w
}

func mustOffer(t *testing.T, jobID, workerID kernel.UUID) *assignment.Assignment {
	t.Helper()
	a, err := assignment.NewOffer(jobID, workerID, 0.9, t0, assignment.DefaultOfferWindow)
	require.NoError(t, err)
	return a
}

func mustAccepted(t *testing.T, jobID, workerID kernel.UUID) *assignment.Assignment {
	t.Helper()
	at := t0.Add(time.Minute)
	a, err := assignment.RestoreAssignment(kernel.NewUUID(), jobID, workerID, assignment.Accepted,
		0.9, t0.Add(assignment.DefaultOfferWindow), &at, t0, at)
	require.NoError(t, err)
	return a
}
