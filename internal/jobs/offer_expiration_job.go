package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep once a minute.
const DefaultSweepSchedule = "@every 1m"

// OfferExpirationJob expires stale offers and re-offers their jobs on a
// cron schedule. A run that is still going when the next tick fires makes
// that tick a no-op.
type OfferExpirationJob struct {
	handler  commands.SweepExpiredOffersCommandHandler
	clock    ports.Clock
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOfferExpirationJob accepts any schedule robfig/cron understands with the
// seconds field enabled, including descriptors such as "@every 30s".
// An empty schedule means DefaultSweepSchedule.
func NewOfferExpirationJob(
	handler commands.SweepExpiredOffersCommandHandler,
	clock ports.Clock,
	schedule string,
	logger *slog.Logger,
) *OfferExpirationJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &OfferExpirationJob{
		handler:  handler,
		clock:    clock,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "offer_expiration_job"),
	}
}

func (j *OfferExpirationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer expiration job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *OfferExpirationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Offer expiration job stopped")
}

func (j *OfferExpirationJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewSweepExpiredOffersCommand(j.clock.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Offer expiration job failed", "error", err)
		return
	}

	if _, err = j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Offer expiration job failed", "error", err)
	}
}
