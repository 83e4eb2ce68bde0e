// Package notify delivers fire-and-forget notifications.
//
// PgNotifier publishes them on a PostgreSQL channel with pg_notify, Listener
// subscribes to that channel through lib/pq and relays every message to
// another ports.Notifier, and LogNotifier writes them to the log. The push
// and SMS channels sit behind the listener and are outside this module.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/ports"
)

// DefaultChannel is the PostgreSQL channel used when none is configured.
const DefaultChannel = "jobmatch_notifications"

// Payload is the JSON form of a ports.Notification on the wire.
type Payload struct {
	Kind         string    `json:"kind"`
	JobID        string    `json:"job_id"`
	WorkerID     string    `json:"worker_id,omitempty"`
	AssignmentID string    `json:"assignment_id,omitempty"`
	At           time.Time `json:"at"`
}

func Encode(n ports.Notification) ([]byte, error) {
	return json.Marshal(Payload{
		Kind:         string(n.Kind),
		JobID:        idString(n.JobID),
		WorkerID:     idString(n.WorkerID),
		AssignmentID: idString(n.AssignmentID),
		At:           n.At.UTC(),
	})
}

func Decode(data []byte) (ports.Notification, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return ports.Notification{}, fmt.Errorf("decode notification: %w", err)
	}
	if p.Kind == "" {
		return ports.Notification{}, fmt.Errorf("decode notification: kind is empty")
	}

	n := ports.Notification{Kind: ports.NotificationKind(p.Kind), At: p.At}
	var err error
	if n.JobID, err = parseID(p.JobID); err != nil {
		return ports.Notification{}, err
	}
	if n.WorkerID, err = parseID(p.WorkerID); err != nil {
		return ports.Notification{}, err
	}
	if n.AssignmentID, err = parseID(p.AssignmentID); err != nil {
		return ports.Notification{}, err
	}
	return n, nil
}

func idString(id kernel.UUID) string {
	if id.Validate() != nil {
		return ""
	}
	return id.String()
}

func parseID(s string) (kernel.UUID, error) {
	if s == "" {
		return kernel.UUID{}, nil
	}
	return kernel.UUIDFromString(s)
}
