package worker

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

var (
	// ErrWorkerIsNotConstructed is returned when a Worker was not created via NewWorker or RestoreWorker.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker or RestoreWorker constructor")
)

// Worker is a service provider profile. It is read-only inside the matching
// core: eligibility, reach and reputation feed the candidate finder, and the
// reputation counters are changed only through repository increments so that
// concurrent updates from other subsystems are not lost.
type Worker struct {
	id              kernel.UUID
	name            string
	status          OperationalStatus
	accountActive   bool
	home            kernel.Location
	serviceRadiusKm float64
	reputation      Reputation
	availability    Availability
	guard           guard.ConstructorGuard
}

// NewWorker creates an Active worker with an active account and no history.
// A new profile starts with a full acceptance rate.
func NewWorker(
	id kernel.UUID,
	name string,
	home kernel.Location,
	serviceRadiusKm float64,
	availability Availability,
) (*Worker, error) {
	reputation, err := NewReputation(MaxRating, 1, 1, 0)
	if err != nil {
		return nil, err
	}
	return RestoreWorker(id, name, Active, true, home, serviceRadiusKm, reputation, availability)
}

// RestoreWorker reconstructs a Worker from storage.
//
// Example:
//
//	rep, _ := worker.NewReputation(4.8, 0.92, 0.97, 31)
//	w, err := worker.RestoreWorker(id, "Dana", worker.Active, true, home, 20, rep, availability)
func RestoreWorker(
	id kernel.UUID,
	name string,
	status OperationalStatus,
	accountActive bool,
	home kernel.Location,
	serviceRadiusKm float64,
	reputation Reputation,
	availability Availability,
) (*Worker, error) {
	w := &Worker{
		accountActive: accountActive,
		reputation:    reputation,
		availability:  availability,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setStatus(status),
		w.setHome(home),
		w.setServiceRadius(serviceRadiusKm),
	); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Worker) Validate() error {
	if w == nil {
		return ErrWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrWorkerIsNotConstructed)
}

func (w *Worker) IsEqual(other *Worker) bool {
	return other != nil && w.id.IsEqual(other.id)
}

func (w *Worker) ID() kernel.UUID            { return w.id }
func (w *Worker) Name() string               { return w.name }
func (w *Worker) Status() OperationalStatus  { return w.status }
func (w *Worker) AccountActive() bool        { return w.accountActive }
func (w *Worker) Home() kernel.Location      { return w.home }
func (w *Worker) ServiceRadiusKm() float64   { return w.serviceRadiusKm }
func (w *Worker) Reputation() Reputation     { return w.reputation }
func (w *Worker) Availability() Availability { return w.availability }

// IsEligible reports whether the worker may receive offers at all.
func (w *Worker) IsEligible() bool {
	return w.status == Active && w.accountActive
}

// ServesDistance reports whether a job distanceKm away is within the service radius.
func (w *Worker) ServesDistance(distanceKm float64) bool {
	return distanceKm <= w.serviceRadiusKm
}

// DistanceKmTo measures from the worker's home coordinate.
func (w *Worker) DistanceKmTo(site kernel.Location) (float64, error) {
	return w.home.DistanceKmTo(site)
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	w.name = name
	return nil
}

func (w *Worker) setStatus(status OperationalStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	w.status = status
	return nil
}

func (w *Worker) setHome(home kernel.Location) error {
	if err := home.Validate(); err != nil {
		return err
	}
	w.home = home
	return nil
}

func (w *Worker) setServiceRadius(km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return errs.NewValueIsInvalidErrorWithCause("serviceRadiusKm", fmt.Errorf("%v is not a non-negative distance", km))
	}
	w.serviceRadiusKm = km
	return nil
}
