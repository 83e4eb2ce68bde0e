package services_test

import (
	"math/rand"
	"testing"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/worker"
	"jobmatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	siteLat = 28.5383
	siteLon = -81.3792
)

func newFinder(t *testing.T, overlap bool) services.CandidateFinder {
	t.Helper()
	settings := services.DefaultSettings()
	settings.RequireWindowOverlap = overlap
	f, err := services.NewCandidateFinderFromSettings(settings)
	require.NoError(t, err)
	return f
}

func TestCandidateFinder_Rank_Scenarios(t *testing.T) {
	finder := newFinder(t, false)
	j := mustJob(t, siteLat, siteLon, "09:00-12:00")

	t.Run("happy path returns the single worker with a high score", func(t *testing.T) {
		a := mustWorker(t, topWorker(siteLat, siteLon))

		got, err := finder.Rank(j, []*worker.Worker{a}, nil)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].Worker.IsEqual(a))
		assert.Zero(t, got[0].DistanceKm)
		assert.Equal(t, 1.0, got[0].Score.Distance)
		assert.Greater(t, got[0].Score.Final, 0.9)
	})

	t.Run("worker outside service radius is excluded", func(t *testing.T) {
		spec := topWorker(28.5500, -81.4000)
		spec.radiusKm = 0.5
		a := mustWorker(t, spec)

		got, err := finder.Rank(j, []*worker.Worker{a}, nil)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("zero workers is not an error", func(t *testing.T) {
		got, err := finder.Rank(j, nil, nil)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)

		_, err = finder.Best(j, nil, nil)
		assert.ErrorIs(t, err, services.ErrNoCandidates)
	})
}

func TestCandidateFinder_Rank_Filters(t *testing.T) {
	finder := newFinder(t, false)
	j := mustJob(t, siteLat, siteLon, "09:00-12:00")

	wrongDay := topWorker(siteLat, siteLon)
	wrongDay.day = kernel.Thursday
	closed := topWorker(siteLat, siteLon)
	closed.slotActive = false
	suspended := topWorker(siteLat, siteLon)
	suspended.status = worker.Suspended
	noAccount := topWorker(siteLat, siteLon)
	noAccount.accountDisabled = true

	kept := mustWorker(t, topWorker(siteLat, siteLon))
	excluded := mustWorker(t, topWorker(siteLat, siteLon))

	got, err := finder.Rank(j, []*worker.Worker{
		mustWorker(t, wrongDay),
		mustWorker(t, closed),
		mustWorker(t, suspended),
		mustWorker(t, noAccount),
		excluded,
		kept,
	}, kernel.NewUUIDSet(excluded.ID()))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Worker.IsEqual(kept))
}

func TestCandidateFinder_Rank_WindowOverlap(t *testing.T) {
	j := mustJob(t, siteLat, siteLon, "17:00-19:00")
	spec := topWorker(siteLat, siteLon) // open 08:00-18:00
	w := mustWorker(t, spec)

	dayOnly, err := newFinder(t, false).Rank(j, []*worker.Worker{w}, nil)
	require.NoError(t, err)
	assert.Len(t, dayOnly, 1)

	strict, err := newFinder(t, true).Rank(j, []*worker.Worker{w}, nil)
	require.NoError(t, err)
	assert.Empty(t, strict)
}

func TestCandidateFinder_Rank_Ordering(t *testing.T) {
	// Acceptance carries no weight here so that scores tie exactly.
	scorer, err := services.NewMatchScorer(services.ScoreWeights{Rating: 0.5, Distance: 0.25, Punctuality: 0.25})
	require.NoError(t, err)
	finder := services.NewCandidateFinder(scorer, false)
	j := mustJob(t, siteLat, siteLon, "09:00-12:00")

	// best and tiedHigh share a score; tiedHigh wins on acceptance rate.
	best := topWorker(siteLat, siteLon)
	best.acceptance = 0.5
	tiedHigh := topWorker(siteLat, siteLon)

	// idA and idB are identical except for their identifiers.
	idA := topWorker(siteLat, siteLon)
	idA.rating, idA.id = 3, "00000000-0000-4000-8000-00000000000a"
	idB := idA
	idB.id = "00000000-0000-4000-8000-00000000000b"

	far := topWorker(28.60, -81.3792)
	far.rating = 5

	workers := []*worker.Worker{
		mustWorker(t, idB), mustWorker(t, best), mustWorker(t, far), mustWorker(t, idA), mustWorker(t, tiedHigh),
	}
	got, err := finder.Rank(j, workers, nil)
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.True(t, got[0].Worker.IsEqual(workers[4]), "tie broken by acceptance rate")
	assert.True(t, got[1].Worker.IsEqual(workers[1]))
	assert.True(t, got[2].Worker.IsEqual(workers[2]))
	assert.True(t, got[3].Worker.IsEqual(workers[3]), "tie broken by worker id")
	assert.True(t, got[4].Worker.IsEqual(workers[0]))

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score.Final, got[i].Score.Final)
	}
}

func TestCandidateFinder_Rank_RejectsUnconstructedJob(t *testing.T) {
	_, err := newFinder(t, false).Rank(&job.Job{}, nil, nil)

	assert.ErrorIs(t, err, job.ErrJobIsNotConstructed)
}

func TestCandidateFinder_Rank_Properties(t *testing.T) {
	finder := newFinder(t, false)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 300; i++ {
		jobLat := 28 + rng.Float64()
		jobLon := -82 + rng.Float64()
		j := mustJob(t, jobLat, jobLon, "10:00-11:00")

		workers := make([]*worker.Worker, 0, 8)
		for k := 0; k < 8; k++ {
			workers = append(workers, mustWorker(t, workerSpec{
				lat:         jobLat + (rng.Float64()-0.5)*0.6,
				lon:         jobLon + (rng.Float64()-0.5)*0.6,
				radiusKm:    rng.Float64() * 40,
				rating:      rng.Float64() * 5,
				acceptance:  rng.Float64(),
				punctuality: rng.Float64(),
				day:         kernel.Weekday(rng.Intn(kernel.DaysInWeek)),
				slotActive:  rng.Intn(4) > 0,
			}))
		}

		got, err := finder.Rank(j, workers, nil)
		require.NoError(t, err)

		for _, c := range got {
			actual, err := c.Worker.DistanceKmTo(j.Location())
			require.NoError(t, err)

			assert.LessOrEqual(t, actual, c.Worker.ServiceRadiusKm(), "radius filter")
			assert.True(t, c.Worker.Availability().IsAvailableOn(j.Weekday()), "availability filter")
		}
	}
}
