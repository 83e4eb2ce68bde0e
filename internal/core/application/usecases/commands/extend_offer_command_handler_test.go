package commands_test

import (
	"testing"

	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/worker"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExtendOfferCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	j := mustJob(t, job.Pending)
	w := mustWorker(t, 28.55, -81.40, 4.5)

	f := newFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.jobs.On("Get", ctx, j.ID()).Return(j, nil).Once(),
		f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once(),
		f.offers.On("ListByJob", ctx, j.ID()).Return([]*assignment.Assignment{}, nil).Once(),
		f.offers.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		f.jobs.On("CompareAndSwapStatus", ctx, j.ID(), job.Assigned, []job.Status{job.Pending, job.Assigned}).
			Return(true, nil).
			Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.notifier.On("Notify", ctx, notification(ports.OfferExtended)).Return(nil).Once(),
	)

	handler := commands.NewExtendOfferCommandHandler(f.factory, services.DefaultSettings(), clockAt(t0), f.notifier, logger)
	cmd, err := commands.NewExtendOfferCommand(j.ID(), w.ID(), 0.87)
	require.NoError(t, err)

	offer, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, assignment.Pending, offer.Status())
	assert.Equal(t, w.ID(), offer.WorkerID())
	assert.InDelta(t, 0.87, offer.MatchScore(), 1e-12)
	assert.Equal(t, t0.Add(assignment.DefaultOfferWindow), offer.ExpiresAt())
	f.assertExpectations(t)
}

func TestExtendOfferCommandHandler_Handle_Rejections(t *testing.T) {
	otherWorker := kernel.NewUUID()

	tests := []struct {
		name     string
		status   job.Status
		siblings func(j *job.Job, w *worker.Worker) []*assignment.Assignment
		want     error
	}{
		{
			name:   "job cancelled",
			status: job.Cancelled,
			want:   errs.ErrInvalidState,
		},
		{
			name:   "job in progress",
			status: job.InProgress,
			want:   errs.ErrInvalidState,
		},
		{
			name:   "sibling accepted",
			status: job.Assigned,
			siblings: func(j *job.Job, _ *worker.Worker) []*assignment.Assignment {
				return []*assignment.Assignment{mustAccepted(t, j.ID(), otherWorker)}
			},
			want: errs.ErrInvalidState,
		},
		{
			name:   "worker already holds a pending offer",
			status: job.Assigned,
			siblings: func(j *job.Job, w *worker.Worker) []*assignment.Assignment {
				return []*assignment.Assignment{mustOffer(t, j.ID(), w.ID())}
			},
			want: errs.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			j := mustJob(t, tt.status)
			w := mustWorker(t, 28.55, -81.40, 4.5)
			var siblings []*assignment.Assignment
			if tt.siblings != nil {
				siblings = tt.siblings(j, w)
			}

			f := newFixture()
			f.uow.On("Begin", ctx).Return(nil).Once()
			f.jobs.On("Get", ctx, j.ID()).Return(j, nil).Once()
			f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once()
			f.offers.On("ListByJob", ctx, j.ID()).Return(siblings, nil).Once()

			handler := commands.NewExtendOfferCommandHandler(f.factory, services.DefaultSettings(), clockAt(t0), f.notifier, logger)
			cmd, _ := commands.NewExtendOfferCommand(j.ID(), w.ID(), 0.5)

			_, err := handler.Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.want)
			f.offers.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
			f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		})
	}
}

func TestExtendOfferCommandHandler_Handle_IneligibleWorker(t *testing.T) {
	ctx := t.Context()
	j := mustJob(t, job.Pending)
	w, err := worker.RestoreWorker(kernel.NewUUID(), "suspended", worker.Suspended, true,
		mustLocation(t, 28.55, -81.40), 20, mustWorker(t, 0, 0, 5).Reputation(), worker.Availability{})
	require.NoError(t, err)

	f := newFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.jobs.On("Get", ctx, j.ID()).Return(j, nil).Once()
	f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once()

	handler := commands.NewExtendOfferCommandHandler(f.factory, services.DefaultSettings(), clockAt(t0), f.notifier, logger)
	cmd, _ := commands.NewExtendOfferCommand(j.ID(), w.ID(), 0.5)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	f.offers.AssertNotCalled(t, "ListByJob", mock.Anything, mock.Anything)
}

func TestExtendOfferCommandHandler_Handle_JobClosedConcurrently(t *testing.T) {
	ctx := t.Context()
	j := mustJob(t, job.Assigned)
	w := mustWorker(t, 28.55, -81.40, 4.5)

	f := newFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.jobs.On("Get", ctx, j.ID()).Return(j, nil).Once()
	f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once()
	f.offers.On("ListByJob", ctx, j.ID()).Return([]*assignment.Assignment{}, nil).Once()
	f.offers.On("Add", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once()
	f.jobs.On("CompareAndSwapStatus", ctx, j.ID(), job.Assigned, []job.Status{job.Pending, job.Assigned}).
		Return(false, nil).
		Once()

	handler := commands.NewExtendOfferCommandHandler(f.factory, services.DefaultSettings(), clockAt(t0), f.notifier, logger)
	cmd, _ := commands.NewExtendOfferCommand(j.ID(), w.ID(), 0.5)

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	f.uow.AssertCalled(t, "Rollback", ctx)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewExtendOfferCommand_ScoreOutOfRange(t *testing.T) {
	_, err := commands.NewExtendOfferCommand(kernel.NewUUID(), kernel.NewUUID(), 1.5)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
