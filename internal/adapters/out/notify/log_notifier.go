package notify

import (
	"context"
	"log/slog"

	"jobmatch/internal/core/ports"
)

// LogNotifier writes each notification to the log at info level.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	attrs := []any{
		"kind", string(notification.Kind),
		"at", notification.At,
	}
	for _, id := range []struct {
		key string
		id  string
	}{
		{"job_id", idString(notification.JobID)},
		{"worker_id", idString(notification.WorkerID)},
		{"assignment_id", idString(notification.AssignmentID)},
	} {
		if id.id != "" {
			attrs = append(attrs, id.key, id.id)
		}
	}

	n.logger.InfoContext(ctx, "notification", attrs...)
	return nil
}
