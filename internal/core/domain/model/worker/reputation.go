package worker

import (
	"errors"
	"math"

	"jobmatch/internal/pkg/errs"
)

const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Reputation is a snapshot of the decaying metrics other subsystems maintain.
// The matching core never writes a Reputation back; it adjusts the stored
// counters through repository increments.
type Reputation struct {
	rating          float64
	acceptanceRate  float64
	punctualityRate float64
	acceptedJobs    int
}

func NewReputation(rating, acceptanceRate, punctualityRate float64, acceptedJobs int) (Reputation, error) {
	if err := errors.Join(
		checkRange("rating", rating, MinRating, MaxRating),
		checkRange("acceptanceRate", acceptanceRate, 0, 1),
		checkRange("punctualityRate", punctualityRate, 0, 1),
	); err != nil {
		return Reputation{}, err
	}
	if acceptedJobs < 0 {
		return Reputation{}, errs.NewValueIsOutOfRangeError("acceptedJobs", acceptedJobs, 0, math.MaxInt)
	}

	return Reputation{
		rating:          rating,
		acceptanceRate:  acceptanceRate,
		punctualityRate: punctualityRate,
		acceptedJobs:    acceptedJobs,
	}, nil
}

func (r Reputation) Rating() float64          { return r.rating }
func (r Reputation) AcceptanceRate() float64  { return r.acceptanceRate }
func (r Reputation) PunctualityRate() float64 { return r.punctualityRate }
func (r Reputation) AcceptedJobs() int        { return r.acceptedJobs }

func checkRange(name string, v, minValue, maxValue float64) error {
	if math.IsNaN(v) || v < minValue || v > maxValue {
		return errs.NewValueIsOutOfRangeError(name, v, minValue, maxValue)
	}
	return nil
}
