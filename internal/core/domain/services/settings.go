package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/pkg/errs"
)

// DefaultNoResponsePenalty is subtracted from a worker's acceptance rate for each expired offer.
const DefaultNoResponsePenalty = 0.02

// Settings is the externally supplied configuration of the matching core.
// It is passed explicitly to every component that needs it.
type Settings struct {
	Weights              ScoreWeights
	OfferWindow          time.Duration
	CheckInRadiusMeters  float64
	NoResponsePenalty    float64
	RequireWindowOverlap bool
}

func DefaultSettings() Settings {
	return Settings{
		Weights:             DefaultScoreWeights(),
		OfferWindow:         assignment.DefaultOfferWindow,
		CheckInRadiusMeters: DefaultCheckInRadiusMeters,
		NoResponsePenalty:   DefaultNoResponsePenalty,
	}
}

func (s Settings) Validate() error {
	var windowErr, radiusErr, penaltyErr error
	if s.OfferWindow <= 0 {
		windowErr = errs.NewValueIsInvalidErrorWithCause("offerWindow", fmt.Errorf("%s is not positive", s.OfferWindow))
	}
	if !(s.CheckInRadiusMeters > 0) || math.IsInf(s.CheckInRadiusMeters, 0) {
		radiusErr = errs.NewValueIsInvalidErrorWithCause("checkInRadiusMeters",
			fmt.Errorf("%v is not a positive distance", s.CheckInRadiusMeters))
	}
	if math.IsNaN(s.NoResponsePenalty) || s.NoResponsePenalty < 0 || s.NoResponsePenalty > 1 {
		penaltyErr = errs.NewValueIsOutOfRangeError("noResponsePenalty", s.NoResponsePenalty, 0, 1)
	}

	return errors.Join(s.Weights.Validate(), windowErr, radiusErr, penaltyErr)
}
