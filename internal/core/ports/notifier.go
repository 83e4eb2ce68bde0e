package ports

import (
	"context"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
)

// NotificationKind names the event a notification reports.
type NotificationKind string

const (
	OfferExtended  NotificationKind = "offer.extended"
	OfferAccepted  NotificationKind = "offer.accepted"
	OfferCancelled NotificationKind = "offer.cancelled"
	OfferExpired   NotificationKind = "offer.expired"
	JobUnmatched   NotificationKind = "job.unmatched"
	JobStarted     NotificationKind = "job.started"
)

// Notification is a fire-and-forget message for the worker or customer
// channel. AssignmentID and WorkerID are zero for job-level events.
type Notification struct {
	Kind         NotificationKind
	JobID        kernel.UUID
	WorkerID     kernel.UUID
	AssignmentID kernel.UUID
	At           time.Time
}

// Notifier hands notifications to the delivery channel. Callers log a
// returned error and carry on; a failed notification never undoes the state
// change it reports.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Clock supplies the current time so deadlines are testable.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock, e.g. ClockFunc(time.Now).
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
