package notify_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"jobmatch/internal/adapters/out/notify"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func TestEncodeDecode(t *testing.T) {
	n := ports.Notification{
		Kind:         ports.OfferExtended,
		JobID:        kernel.NewUUID(),
		WorkerID:     kernel.NewUUID(),
		AssignmentID: kernel.NewUUID(),
		At:           at,
	}

	data, err := notify.Encode(n)
	require.NoError(t, err)

	got, err := notify.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, n.Kind, got.Kind)
	assert.True(t, n.JobID.IsEqual(got.JobID))
	assert.True(t, n.WorkerID.IsEqual(got.WorkerID))
	assert.True(t, n.AssignmentID.IsEqual(got.AssignmentID))
	assert.True(t, at.Equal(got.At))
}

func TestEncode_OmitsZeroIDs(t *testing.T) {
	data, err := notify.Encode(ports.Notification{Kind: ports.JobUnmatched, JobID: kernel.NewUUID(), At: at})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "worker_id")
	assert.NotContains(t, raw, "assignment_id")
	assert.Equal(t, "job.unmatched", raw["kind"])

	got, err := notify.Decode(data)
	require.NoError(t, err)
	assert.Error(t, got.WorkerID.Validate(), "absent IDs decode to the zero UUID")
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "offer.extended"},
		{"no kind", `{"job_id":"` + kernel.NewUUID().String() + `"}`},
		{"bad id", `{"kind":"offer.extended","job_id":"nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := notify.Decode([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	jobID := kernel.NewUUID()

	err := notify.NewLogNotifier(logger).Notify(t.Context(), ports.Notification{
		Kind:  ports.JobStarted,
		JobID: jobID,
		At:    at,
	})
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "notification", record["msg"])
	assert.Equal(t, "notifier", record["component"])
	assert.Equal(t, "job.started", record["kind"])
	assert.Equal(t, jobID.String(), record["job_id"])
	assert.NotContains(t, record, "worker_id")
}
