package notify

import (
	"context"
	"fmt"

	"jobmatch/internal/core/ports"

	"gorm.io/gorm"
)

// PgNotifier publishes notifications with pg_notify. Outside a transaction
// the message is delivered to listeners immediately.
type PgNotifier struct {
	db      *gorm.DB
	channel string
}

func NewPgNotifier(db *gorm.DB, channel string) *PgNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &PgNotifier{db: db, channel: channel}
}

func (n *PgNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	payload, err := Encode(notification)
	if err != nil {
		return err
	}

	if err = n.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", n.channel, string(payload)).Error; err != nil {
		return fmt.Errorf("pg_notify %s: %w", n.channel, err)
	}
	return nil
}
