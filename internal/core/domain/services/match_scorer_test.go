package services_test

import (
	"math"
	"testing"

	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreWeights_Validate(t *testing.T) {
	require.NoError(t, services.DefaultScoreWeights().Validate())
	require.NoError(t, services.ScoreWeights{Rating: 1}.Validate())

	t.Run("should reject weights not summing to one", func(t *testing.T) {
		err := services.ScoreWeights{Rating: 0.5, Distance: 0.2, Acceptance: 0.2, Punctuality: 0.2}.Validate()

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "sum to")
	})

	t.Run("should reject out of range weights", func(t *testing.T) {
		err := services.ScoreWeights{Rating: 1.5, Distance: -0.5}.Validate()

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "ratingWeight")
		assert.Contains(t, err.Error(), "distanceWeight")
	})

	_, err := services.NewMatchScorer(services.ScoreWeights{})
	assert.Error(t, err)
}

func TestMatchScorer_Score(t *testing.T) {
	scorer, err := services.NewMatchScorer(services.DefaultScoreWeights())
	require.NoError(t, err)

	tests := []struct {
		name string
		in   services.ScoreInput
		want services.ScoreBreakdown
	}{
		{
			name: "perfect worker on site",
			in:   services.ScoreInput{Rating: 5, AcceptanceRate: 1, PunctualityRate: 1, DistanceKm: 0},
			want: services.ScoreBreakdown{Rating: 1, Distance: 1, Acceptance: 1, Punctuality: 1, Final: 1},
		},
		{
			name: "halfway on every axis",
			in:   services.ScoreInput{Rating: 2.5, AcceptanceRate: 0.5, PunctualityRate: 0.5, DistanceKm: 25},
			want: services.ScoreBreakdown{Rating: 0.5, Distance: 0.5, Acceptance: 0.5, Punctuality: 0.5, Final: 0.5},
		},
		{
			name: "beyond decay distance",
			in:   services.ScoreInput{Rating: 5, AcceptanceRate: 1, PunctualityRate: 1, DistanceKm: 80},
			want: services.ScoreBreakdown{Rating: 1, Distance: 0, Acceptance: 1, Punctuality: 1, Final: 0.8},
		},
		{
			name: "out of range inputs are clamped",
			in:   services.ScoreInput{Rating: 9, AcceptanceRate: -1, PunctualityRate: math.NaN(), DistanceKm: -3},
			want: services.ScoreBreakdown{Rating: 1, Distance: 1, Acceptance: 0, Punctuality: 0, Final: 0.6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.in)

			assert.InDelta(t, tt.want.Rating, got.Rating, 1e-12)
			assert.InDelta(t, tt.want.Distance, got.Distance, 1e-12)
			assert.InDelta(t, tt.want.Acceptance, got.Acceptance, 1e-12)
			assert.InDelta(t, tt.want.Punctuality, got.Punctuality, 1e-12)
			assert.InDelta(t, tt.want.Final, got.Final, 1e-12)
		})
	}
}

func FuzzMatchScorer_Score(f *testing.F) {
	f.Add(4.2, 0.9, 0.8, 3.5)
	f.Add(0.0, 0.0, 0.0, 100.0)
	f.Add(-1.0, 2.0, math.Inf(1), math.NaN())

	scorer, err := services.NewMatchScorer(services.DefaultScoreWeights())
	require.NoError(f, err)

	f.Fuzz(func(t *testing.T, rating, acceptance, punctuality, distance float64) {
		in := services.ScoreInput{Rating: rating, AcceptanceRate: acceptance, PunctualityRate: punctuality, DistanceKm: distance}

		first := scorer.Score(in)
		second := scorer.Score(in)

		assert.Equal(t, math.Float64bits(first.Final), math.Float64bits(second.Final), "score must be bit-identical")
		assert.GreaterOrEqual(t, first.Final, 0.0)
		assert.LessOrEqual(t, first.Final, 1.0)
	})
}
