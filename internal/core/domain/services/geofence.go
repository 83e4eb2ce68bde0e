package services

import (
	"errors"
	"fmt"

	"jobmatch/internal/core/domain/model/kernel"
)

// DefaultCheckInRadiusMeters is the site check-in tolerance.
const DefaultCheckInRadiusMeters = 150.0

// ErrOutsideGeofence matches every OutsideGeofenceError.
var ErrOutsideGeofence = errors.New("outside geofence")

// GeofenceResult carries the numbers the worker app shows on a failed check-in.
type GeofenceResult struct {
	Valid             bool
	DistanceMeters    float64
	MaxDistanceMeters float64
}

// OutsideGeofenceError rejects a check-in reported too far from the job site.
type OutsideGeofenceError struct {
	DistanceMeters    float64
	MaxDistanceMeters float64
}

func (e *OutsideGeofenceError) Error() string {
	return fmt.Sprintf("%s: %.1f m from site, allowed %.1f m", ErrOutsideGeofence, e.DistanceMeters, e.MaxDistanceMeters)
}

func (e *OutsideGeofenceError) Unwrap() error {
	return ErrOutsideGeofence
}

// Geofence decides radius membership between two coordinates.
type Geofence struct{}

func NewGeofence() Geofence {
	return Geofence{}
}

// WithinRadius is valid iff the great-circle distance is at most radiusMeters.
// A non-positive radius selects DefaultCheckInRadiusMeters.
func (Geofence) WithinRadius(a, b kernel.Location, radiusMeters float64) (GeofenceResult, error) {
	if !(radiusMeters > 0) {
		radiusMeters = DefaultCheckInRadiusMeters
	}

	distance, err := a.DistanceTo(b)
	if err != nil {
		return GeofenceResult{}, err
	}

	return GeofenceResult{
		Valid:             distance <= radiusMeters,
		DistanceMeters:    distance,
		MaxDistanceMeters: radiusMeters,
	}, nil
}

// Err returns nil for a valid result and an OutsideGeofenceError otherwise.
func (r GeofenceResult) Err() error {
	if r.Valid {
		return nil
	}
	return &OutsideGeofenceError{DistanceMeters: r.DistanceMeters, MaxDistanceMeters: r.MaxDistanceMeters}
}
