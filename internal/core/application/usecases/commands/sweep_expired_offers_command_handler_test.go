package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/worker"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSweepHandler(t *testing.T, f *fixture) commands.SweepExpiredOffersCommandHandler {
	t.Helper()
	return commands.NewSweepExpiredOffersCommandHandler(f.factory, newFinder(t), services.DefaultSettings(),
		f.notifier, logger)
}

func TestSweepExpiredOffersCommandHandler_Handle_ExpiresAndReoffers(t *testing.T) {
	ctx := t.Context()
	now := t0.Add(20 * time.Minute)
	j := mustJob(t, job.Assigned)
	silent := mustWorker(t, 28.5383, -81.3792, 5)
	next := mustWorker(t, 28.55, -81.40, 4)
	offer := mustOffer(t, j.ID(), silent.ID())

	f := newFixture()
	mock.InOrder(
		f.offers.On("ListExpiredBefore", ctx, now).Return([]*assignment.Assignment{offer}, nil).Once(),

		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.jobs.On("Get", ctx, j.ID()).Return(j, nil).Once(),
		f.offers.On("CompareAndSwapStatus", ctx, offer, assignment.Pending).Return(true, nil).Once(),
		f.workers.On("AdjustAcceptanceRate", ctx, silent.ID(), -services.DefaultNoResponsePenalty).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.notifier.On("Notify", ctx, notification(ports.OfferExpired)).Return(nil).Once(),

		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.jobs.On("Get", ctx, j.ID()).Return(j, nil).Once(),
		f.offers.On("ListByJob", ctx, j.ID()).Return([]*assignment.Assignment{offer}, nil).Once(),
		f.workers.On("ListActiveWithAvailability", ctx).Return([]*worker.Worker{silent, next}, nil).Once(),
		f.offers.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		f.jobs.On("CompareAndSwapStatus", ctx, j.ID(), job.Assigned, []job.Status{job.Pending, job.Assigned}).
			Return(true, nil).
			Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.notifier.On("Notify", ctx, notification(ports.OfferExtended)).Return(nil).Once(),

		f.jobs.On("ListStranded", ctx).Return([]kernel.UUID{}, nil).Once(),
	)

	cmd, err := commands.NewSweepExpiredOffersCommand(now)
	require.NoError(t, err)

	report, err := newSweepHandler(t, f).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SweepReport{Scanned: 1, Expired: 1, Reoffered: 1}, report)
	assert.Equal(t, assignment.Expired, offer.Status())

	added := f.offers.Calls[len(f.offers.Calls)-1]
	require.Equal(t, "Add", added.Method)
	assert.Equal(t, next.ID(), added.Arguments[1].(*assignment.Assignment).WorkerID())
	f.assertExpectations(t)
}

func TestSweepExpiredOffersCommandHandler_Handle_NoCandidateLeft(t *testing.T) {
	ctx := t.Context()
	now := t0.Add(20 * time.Minute)
	j := mustJob(t, job.Assigned)
	silent := mustWorker(t, 28.5383, -81.3792, 5)
	offer := mustOffer(t, j.ID(), silent.ID())

	f := newFixture()
	mock.InOrder(
		f.offers.On("ListExpiredBefore", ctx, now).Return([]*assignment.Assignment{offer}, nil).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.jobs.On("Get", ctx, j.ID()).Return(j, nil).Once(),
		f.offers.On("CompareAndSwapStatus", ctx, offer, assignment.Pending).Return(true, nil).Once(),
		f.workers.On("AdjustAcceptanceRate", ctx, silent.ID(), -services.DefaultNoResponsePenalty).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.notifier.On("Notify", ctx, notification(ports.OfferExpired)).Return(nil).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.jobs.On("Get", ctx, j.ID()).Return(j, nil).Once(),
		f.offers.On("ListByJob", ctx, j.ID()).Return([]*assignment.Assignment{offer}, nil).Once(),
		f.workers.On("ListActiveWithAvailability", ctx).Return([]*worker.Worker{silent}, nil).Once(),
		f.jobs.On("CompareAndSwapStatus", ctx, j.ID(), job.Pending, []job.Status{job.Assigned}).
			Return(true, nil).
			Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.notifier.On("Notify", ctx, notification(ports.JobUnmatched)).Return(nil).Once(),
		f.jobs.On("ListStranded", ctx).Return([]kernel.UUID{}, nil).Once(),
	)

	cmd, _ := commands.NewSweepExpiredOffersCommand(now)

	report, err := newSweepHandler(t, f).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SweepReport{Scanned: 1, Expired: 1, Unmatched: 1}, report)
	f.offers.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestSweepExpiredOffersCommandHandler_Handle_AcceptedMeanwhile(t *testing.T) {
	ctx := t.Context()
	now := t0.Add(20 * time.Minute)
	j := mustJob(t, job.Assigned)
	offer := mustOffer(t, j.ID(), kernel.NewUUID())

	f := newFixture()
	mock.InOrder(
		f.offers.On("ListExpiredBefore", ctx, now).Return([]*assignment.Assignment{offer}, nil).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.jobs.On("Get", ctx, j.ID()).Return(j, nil).Once(),
		f.offers.On("CompareAndSwapStatus", ctx, offer, assignment.Pending).Return(false, nil).Once(),
		f.jobs.On("ListStranded", ctx).Return(nil, nil).Once(),
	)

	cmd, _ := commands.NewSweepExpiredOffersCommand(now)

	report, err := newSweepHandler(t, f).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SweepReport{Scanned: 1, Skipped: 1}, report)
	f.workers.AssertNotCalled(t, "AdjustAcceptanceRate", mock.Anything, mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestSweepExpiredOffersCommandHandler_Handle_NotYetDue(t *testing.T) {
	ctx := t.Context()
	now := t0.Add(5 * time.Minute)
	offer := mustOffer(t, kernel.NewUUID(), kernel.NewUUID())

	f := newFixture()
	f.offers.On("ListExpiredBefore", ctx, now).Return([]*assignment.Assignment{offer}, nil).Once()
	f.jobs.On("ListStranded", ctx).Return(nil, nil).Once()

	cmd, _ := commands.NewSweepExpiredOffersCommand(now)

	report, err := newSweepHandler(t, f).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SweepReport{Scanned: 1, Skipped: 1}, report)
	assert.Equal(t, assignment.Pending, offer.Status())
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestSweepExpiredOffersCommandHandler_Handle_ContinuesAfterFailure(t *testing.T) {
	ctx := t.Context()
	now := t0.Add(20 * time.Minute)
	first, second := mustJob(t, job.Assigned), mustJob(t, job.Assigned)
	broken := mustOffer(t, first.ID(), kernel.NewUUID())
	taken := mustOffer(t, second.ID(), kernel.NewUUID())

	f := newFixture()
	mock.InOrder(
		f.offers.On("ListExpiredBefore", ctx, now).Return([]*assignment.Assignment{broken, taken}, nil).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.jobs.On("Get", ctx, first.ID()).Return(first, nil).Once(),
		f.offers.On("CompareAndSwapStatus", ctx, broken, assignment.Pending).Return(false, errors.New("deadlock")).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.jobs.On("Get", ctx, second.ID()).Return(second, nil).Once(),
		f.offers.On("CompareAndSwapStatus", ctx, taken, assignment.Pending).Return(false, nil).Once(),
		f.jobs.On("ListStranded", ctx).Return(nil, nil).Once(),
	)

	cmd, _ := commands.NewSweepExpiredOffersCommand(now)

	report, err := newSweepHandler(t, f).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SweepReport{Scanned: 2, Skipped: 1, Failed: 1}, report)
}

func TestSweepExpiredOffersCommandHandler_Handle_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	now := t0.Add(20 * time.Minute)
	offers := []*assignment.Assignment{
		mustOffer(t, kernel.NewUUID(), kernel.NewUUID()),
		mustOffer(t, kernel.NewUUID(), kernel.NewUUID()),
	}

	f := newFixture()
	f.offers.On("ListExpiredBefore", ctx, now).Return(offers, nil).Run(func(mock.Arguments) { cancel() }).Once()

	cmd, _ := commands.NewSweepExpiredOffersCommand(now)

	report, err := newSweepHandler(t, f).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SweepReport{Scanned: 2, Failed: 2}, report)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	f.jobs.AssertNotCalled(t, "ListStranded", mock.Anything)
}

func TestSweepExpiredOffersCommandHandler_Handle_JobTakenMeanwhileCancelsWithoutPenalty(t *testing.T) {
	ctx := t.Context()
	now := t0.Add(20 * time.Minute)
	j := mustJob(t, job.Accepted)
	sibling := mustOffer(t, j.ID(), kernel.NewUUID())

	f := newFixture()
	mock.InOrder(
		f.offers.On("ListExpiredBefore", ctx, now).Return([]*assignment.Assignment{sibling}, nil).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.jobs.On("Get", ctx, j.ID()).Return(j, nil).Once(),
		f.offers.On("CompareAndSwapStatus", ctx, sibling, assignment.Pending).Return(true, nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.notifier.On("Notify", ctx, notification(ports.OfferCancelled)).Return(nil).Once(),
		f.jobs.On("ListStranded", ctx).Return(nil, nil).Once(),
	)

	cmd, _ := commands.NewSweepExpiredOffersCommand(now)

	report, err := newSweepHandler(t, f).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SweepReport{Scanned: 1, Cancelled: 1}, report)
	assert.Equal(t, assignment.Cancelled, sibling.Status())
	f.workers.AssertNotCalled(t, "AdjustAcceptanceRate", mock.Anything, mock.Anything, mock.Anything)
	f.offers.AssertNotCalled(t, "ListByJob", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestSweepExpiredOffersCommandHandler_Handle_RematchesStrandedJobs(t *testing.T) {
	ctx := t.Context()
	now := t0.Add(20 * time.Minute)
	j := mustJob(t, job.Assigned)
	silent := mustWorker(t, 28.5383, -81.3792, 5)
	next := mustWorker(t, 28.55, -81.40, 4)
	lapsed := mustOffer(t, j.ID(), silent.ID())
	require.NoError(t, lapsed.Expire(t0.Add(16*time.Minute)))

	f := newFixture()
	mock.InOrder(
		f.offers.On("ListExpiredBefore", ctx, now).Return([]*assignment.Assignment{}, nil).Once(),
		f.jobs.On("ListStranded", ctx).Return([]kernel.UUID{j.ID()}, nil).Once(),

		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.jobs.On("Get", ctx, j.ID()).Return(j, nil).Once(),
		f.offers.On("ListByJob", ctx, j.ID()).Return([]*assignment.Assignment{lapsed}, nil).Once(),
		f.workers.On("ListActiveWithAvailability", ctx).Return([]*worker.Worker{silent, next}, nil).Once(),
		f.offers.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		f.jobs.On("CompareAndSwapStatus", ctx, j.ID(), job.Assigned, []job.Status{job.Pending, job.Assigned}).
			Return(true, nil).
			Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.notifier.On("Notify", ctx, notification(ports.OfferExtended)).Return(nil).Once(),
	)

	cmd, _ := commands.NewSweepExpiredOffersCommand(now)

	report, err := newSweepHandler(t, f).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SweepReport{Reoffered: 1}, report)

	added := f.offers.Calls[len(f.offers.Calls)-1]
	require.Equal(t, "Add", added.Method)
	assert.Equal(t, next.ID(), added.Arguments[1].(*assignment.Assignment).WorkerID())
	f.assertExpectations(t)
}

func TestSweepExpiredOffersCommandHandler_Handle_StrandedListErrorKeepsReport(t *testing.T) {
	ctx := t.Context()
	now := t0.Add(20 * time.Minute)

	f := newFixture()
	f.offers.On("ListExpiredBefore", ctx, now).Return([]*assignment.Assignment{}, nil).Once()
	f.jobs.On("ListStranded", ctx).Return(nil, errors.New("database error")).Once()

	cmd, _ := commands.NewSweepExpiredOffersCommand(now)

	report, err := newSweepHandler(t, f).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SweepReport{}, report)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestSweepExpiredOffersCommandHandler_Handle_ListError(t *testing.T) {
	ctx := t.Context()
	now := t0.Add(20 * time.Minute)

	f := newFixture()
	f.offers.On("ListExpiredBefore", ctx, now).Return(nil, errors.New("database error")).Once()

	cmd, _ := commands.NewSweepExpiredOffersCommand(now)

	_, err := newSweepHandler(t, f).Handle(ctx, cmd)

	require.ErrorContains(t, err, "database error")
}
