package commands

import (
	"context"
	"log/slog"

	"jobmatch/internal/core/ports"
)

// notify delivers n and logs a failure. It never fails the caller.
func notify(ctx context.Context, notifier ports.Notifier, logger *slog.Logger, n ports.Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, n); err != nil {
		logger.WarnContext(ctx, "notification failed",
			"kind", n.Kind,
			"job_id", n.JobID.String(),
			"error", err,
		)
	}
}

func rollback(ctx context.Context, uow ports.UnitOfWork) {
	_ = uow.Rollback(ctx)
}
