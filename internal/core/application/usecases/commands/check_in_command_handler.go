package commands

import (
	"context"
	"errors"
	"log/slog"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"
)

// CheckInCommandHandler gates the execution phase on the worker's position.
//
// The worker must hold the job's Accepted offer. A report farther than the
// configured radius returns the geofence numbers together with an
// *services.OutsideGeofenceError and leaves the job Accepted; a passing report
// moves the job Accepted -> InProgress.
type CheckInCommandHandler struct {
	uowFactory   ports.UnitOfWorkFactory
	geofence     services.Geofence
	radiusMeters float64
	clock        ports.Clock
	notifier     ports.Notifier
	logger       *slog.Logger
}

func NewCheckInCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	settings services.Settings,
	clock ports.Clock,
	notifier ports.Notifier,
	logger *slog.Logger,
) CheckInCommandHandler {
	return CheckInCommandHandler{
		uowFactory:   uowFactory,
		geofence:     services.NewGeofence(),
		radiusMeters: settings.CheckInRadiusMeters,
		clock:        clock,
		notifier:     notifier,
		logger:       logger.With("component", "check_in"),
	}
}

// Handle always returns the computed geofence result once the job and the
// caller's offer are found, including on a geofence failure.
func (h CheckInCommandHandler) Handle(ctx context.Context, command CheckInCommand) (services.GeofenceResult, error) {
	if err := command.Validate(); err != nil {
		return services.GeofenceResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.GeofenceResult{}, err
	}
	defer rollback(ctx, uow)

	j, err := loadAcceptedJob(ctx, uow, command.JobID(), command.WorkerID())
	if err != nil {
		return services.GeofenceResult{}, err
	}

	result, err := h.geofence.WithinRadius(command.Reported(), j.Location(), h.radiusMeters)
	if err != nil {
		return services.GeofenceResult{}, err
	}
	if err = result.Err(); err != nil {
		h.logger.InfoContext(ctx, "check-in outside geofence",
			"job_id", j.ID().String(),
			"worker_id", command.WorkerID().String(),
			"distance_m", result.DistanceMeters,
			"max_distance_m", result.MaxDistanceMeters,
		)
		return result, err
	}

	if err = j.Status().ValidateStart(); err != nil {
		return result, err
	}
	won, err := uow.JobRepository().CompareAndSwapStatus(ctx, j.ID(), job.InProgress, job.Accepted)
	if err != nil {
		return result, err
	}
	if !won {
		return result, errs.NewInvalidStateErrorWithCause("job status", errors.New("job is no longer accepted"))
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	notify(ctx, h.notifier, h.logger, ports.Notification{
		Kind:     ports.JobStarted,
		JobID:    j.ID(),
		WorkerID: command.WorkerID(),
		At:       h.clock.Now(),
	})
	return result, nil
}

// loadAcceptedJob returns the job after checking that workerID holds its
// Accepted offer.
func loadAcceptedJob(ctx context.Context, uow ports.UnitOfWork, jobID, workerID kernel.UUID) (*job.Job, error) {
	j, err := uow.JobRepository().Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	siblings, err := uow.AssignmentRepository().ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	accepted := findAccepted(siblings)
	if accepted == nil || !accepted.IsOwnedBy(workerID) {
		return nil, errs.NewForbiddenError("job", jobID.String(), workerID.String())
	}
	return j, nil
}

