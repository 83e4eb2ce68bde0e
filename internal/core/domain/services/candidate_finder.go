package services

import (
	"errors"
	"sort"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/worker"
)

// ErrNoCandidates is returned by callers that need at least one candidate.
// Rank itself returns an empty slice instead.
var ErrNoCandidates = errors.New("no eligible candidates")

// Candidate is one ranked worker for a job.
type Candidate struct {
	Worker     *worker.Worker
	DistanceKm float64
	Score      ScoreBreakdown
}

// CandidateFinder filters and ranks workers for a job.
//
// Hard filters, in order:
//   - worker not eligible (status or account)
//   - job outside the worker's service radius
//   - no active availability slot on the job's weekday
//   - slot does not contain the job window, when RequireWindowOverlap is set
//   - worker excluded by the caller (already offered)
//
// Survivors are sorted by score descending, then acceptance rate descending,
// then worker ID ascending, so the order is fully deterministic.
type CandidateFinder struct {
	scorer               MatchScorer
	requireWindowOverlap bool
}

func NewCandidateFinder(scorer MatchScorer, requireWindowOverlap bool) CandidateFinder {
	return CandidateFinder{scorer: scorer, requireWindowOverlap: requireWindowOverlap}
}

// NewCandidateFinderFromSettings builds the scorer and finder from settings.
func NewCandidateFinderFromSettings(settings Settings) (CandidateFinder, error) {
	scorer, err := NewMatchScorer(settings.Weights)
	if err != nil {
		return CandidateFinder{}, err
	}
	return NewCandidateFinder(scorer, settings.RequireWindowOverlap), nil
}

// Rank returns the surviving candidates best first. No survivors is not an error.
func (f CandidateFinder) Rank(j *job.Job, workers []*worker.Worker, exclude kernel.UUIDSet) ([]Candidate, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}

	day := j.Weekday()
	candidates := make([]Candidate, 0, len(workers))

	for _, w := range workers {
		if err := w.Validate(); err != nil {
			return nil, err
		}
		if !w.IsEligible() || exclude.Contains(w.ID()) {
			continue
		}

		distanceKm, err := w.DistanceKmTo(j.Location())
		if err != nil {
			return nil, err
		}
		if !w.ServesDistance(distanceKm) {
			continue
		}

		if !w.Availability().IsAvailableOn(day) {
			continue
		}
		if f.requireWindowOverlap && !w.Availability().Covers(day, j.TimeWindow()) {
			continue
		}

		rep := w.Reputation()
		candidates = append(candidates, Candidate{
			Worker:     w,
			DistanceKm: distanceKm,
			Score: f.scorer.Score(ScoreInput{
				Rating:          rep.Rating(),
				AcceptanceRate:  rep.AcceptanceRate(),
				PunctualityRate: rep.PunctualityRate(),
				DistanceKm:      distanceKm,
			}),
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		ca, cb := candidates[a], candidates[b]
		if ca.Score.Final != cb.Score.Final {
			return ca.Score.Final > cb.Score.Final
		}
		ra, rb := ca.Worker.Reputation().AcceptanceRate(), cb.Worker.Reputation().AcceptanceRate()
		if ra != rb {
			return ra > rb
		}
		return ca.Worker.ID().Less(cb.Worker.ID())
	})

	return candidates, nil
}

// Best returns the top candidate or ErrNoCandidates.
func (f CandidateFinder) Best(j *job.Job, workers []*worker.Worker, exclude kernel.UUIDSet) (Candidate, error) {
	ranked, err := f.Rank(j, workers, exclude)
	if err != nil {
		return Candidate{}, err
	}
	if len(ranked) == 0 {
		return Candidate{}, ErrNoCandidates
	}
	return ranked[0], nil
}
