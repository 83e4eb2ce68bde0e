package services_test

import (
	"testing"
	"time"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/worker"

	"github.com/stretchr/testify/require"
)

// jobDate is a Wednesday.
var jobDate = time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)

func mustLocation(t testing.TB, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func mustJob(t testing.TB, lat, lon float64, window string) *job.Job {
	t.Helper()
	w, err := kernel.ParseTimeWindow(window)
	require.NoError(t, err)
	j, err := job.NewJob(kernel.NewUUID(), mustLocation(t, lat, lon), jobDate, w)
	require.NoError(t, err)
	return j
}

type workerSpec struct {
	lat, lon        float64
	radiusKm        float64
	rating          float64
	acceptance      float64
	punctuality     float64
	day             kernel.Weekday
	slot            string
	slotActive      bool
	status          worker.OperationalStatus
	accountDisabled bool
	id              string
}

func mustWorker(t testing.TB, s workerSpec) *worker.Worker {
	t.Helper()
	if s.status == worker.Unknown {
		s.status = worker.Active
	}
	if s.slot == "" {
		s.slot = "08:00-18:00"
	}

	var availability worker.Availability
	window, err := kernel.ParseTimeWindow(s.slot)
	require.NoError(t, err)
	slot, err := worker.NewAvailabilitySlot(s.day, window, s.slotActive)
	require.NoError(t, err)
	availability, err = worker.NewAvailability(slot)
	require.NoError(t, err)

	id := kernel.NewUUID()
	if s.id != "" {
		id, err = kernel.UUIDFromString(s.id)
		require.NoError(t, err)
	}

	rep, err := worker.NewReputation(s.rating, s.acceptance, s.punctuality, 0)
	require.NoError(t, err)

	w, err := worker.RestoreWorker(id, "worker", s.status, !s.accountDisabled,
		mustLocation(t, s.lat, s.lon), s.radiusKm, rep, availability)
	require.NoError(t, err)
	return w
}

func topWorker(lat, lon float64) workerSpec {
	return workerSpec{
		lat: lat, lon: lon, radiusKm: 20,
		rating: 5, acceptance: 1, punctuality: 1,
		day: kernel.Wednesday, slotActive: true,
	}
}
