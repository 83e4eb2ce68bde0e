package notify

import (
	"context"
	"log/slog"
	"time"

	"jobmatch/internal/core/ports"

	"github.com/lib/pq"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// Listener subscribes to a PostgreSQL channel and hands every decoded
// notification to next. Malformed payloads and delivery errors are logged
// and dropped.
type Listener struct {
	listener *pq.Listener
	channel  string
	next     ports.Notifier
	logger   *slog.Logger
}

// Listen opens a dedicated connection and subscribes to channel. The
// subscription is active when Listen returns.
func Listen(dsn, channel string, next ports.Notifier, logger *slog.Logger) (*Listener, error) {
	if channel == "" {
		channel = DefaultChannel
	}
	logger = logger.With("component", "notification_listener", "channel", channel)

	l := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, func(event pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("listener connection event", "event", int(event), "error", err)
		}
	})
	if err := l.Listen(channel); err != nil {
		_ = l.Close()
		return nil, err
	}

	return &Listener{listener: l, channel: channel, next: next, logger: logger}, nil
}

// Run relays notifications until ctx is done.
func (l *Listener) Run(ctx context.Context) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-l.listener.Notify:
			if n == nil {
				// Reconnected; messages sent meanwhile are lost.
				l.logger.InfoContext(ctx, "listener reconnected")
				continue
			}
			l.relay(ctx, n.Extra)
		case <-ticker.C:
			if err := l.listener.Ping(); err != nil {
				l.logger.WarnContext(ctx, "listener ping failed", "error", err)
			}
		}
	}
}

func (l *Listener) relay(ctx context.Context, payload string) {
	notification, err := Decode([]byte(payload))
	if err != nil {
		l.logger.WarnContext(ctx, "dropping malformed notification", "error", err)
		return
	}
	if err = l.next.Notify(ctx, notification); err != nil {
		l.logger.WarnContext(ctx, "relay notification failed", "kind", string(notification.Kind), "error", err)
	}
}

func (l *Listener) Close() error {
	return l.listener.Close()
}
