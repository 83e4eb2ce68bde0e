package services

import (
	"errors"
	"fmt"
	"math"

	"jobmatch/internal/pkg/errs"
)

// DistanceDecayKm is the distance at which the distance sub-score reaches zero.
const DistanceDecayKm = 50.0

const weightSumTolerance = 1e-9

// ScoreWeights balances the four sub-scores. Weights are in [0,1] and sum to 1.
type ScoreWeights struct {
	Rating      float64
	Distance    float64
	Acceptance  float64
	Punctuality float64
}

// DefaultScoreWeights favours rating and splits the rest evenly.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{Rating: 0.4, Distance: 0.2, Acceptance: 0.2, Punctuality: 0.2}
}

// Validate checks each weight is within [0,1] and that they sum to 1.
func (w ScoreWeights) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"ratingWeight", w.Rating},
		{"distanceWeight", w.Distance},
		{"acceptanceWeight", w.Acceptance},
		{"punctualityWeight", w.Punctuality},
	}

	var rangeErrs []error
	for _, n := range named {
		if math.IsNaN(n.value) || n.value < 0 || n.value > 1 {
			rangeErrs = append(rangeErrs, errs.NewValueIsOutOfRangeError(n.name, n.value, 0, 1))
		}
	}
	if err := errors.Join(rangeErrs...); err != nil {
		return err
	}

	if sum := w.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return errs.NewValueIsInvalidErrorWithCause("scoreWeights", fmt.Errorf("weights sum to %v, not 1", sum))
	}
	return nil
}

func (w ScoreWeights) Sum() float64 {
	return w.Rating + w.Distance + w.Acceptance + w.Punctuality
}

// ScoreInput is everything the scorer looks at for one worker and job.
type ScoreInput struct {
	Rating          float64
	AcceptanceRate  float64
	PunctualityRate float64
	DistanceKm      float64
}

// ScoreBreakdown explains a score: each sub-score in [0,1] and the weighted Final.
type ScoreBreakdown struct {
	Rating      float64
	Distance    float64
	Acceptance  float64
	Punctuality float64
	Final       float64
}

// MatchScorer computes a worker's fitness for a job. It is pure: identical
// inputs always produce bit-identical output.
type MatchScorer struct {
	weights ScoreWeights
}

// NewMatchScorer validates weights before accepting them.
func NewMatchScorer(weights ScoreWeights) (MatchScorer, error) {
	if err := weights.Validate(); err != nil {
		return MatchScorer{}, err
	}
	return MatchScorer{weights: weights}, nil
}

func (s MatchScorer) Weights() ScoreWeights {
	return s.weights
}

// Score clamps every input into its domain, so out-of-range reputation data
// never pushes the result outside [0,1].
func (s MatchScorer) Score(in ScoreInput) ScoreBreakdown {
	b := ScoreBreakdown{
		Rating:      clamp(in.Rating, 0, 5) / 5,
		Distance:    math.Max(0, 1-clamp(in.DistanceKm, 0, math.MaxFloat64)/DistanceDecayKm),
		Acceptance:  clamp(in.AcceptanceRate, 0, 1),
		Punctuality: clamp(in.PunctualityRate, 0, 1),
	}

	b.Final = clamp(
		s.weights.Rating*b.Rating+
			s.weights.Distance*b.Distance+
			s.weights.Acceptance*b.Acceptance+
			s.weights.Punctuality*b.Punctuality,
		0, 1)
	return b
}

// clamp maps NaN to lo.
func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v), v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
