package job

import (
	"errors"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

var (
	// ErrJobIsNotConstructed is returned when a Job was not created via NewJob or RestoreJob.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")
)

// Job is the bookable unit of work. The booking flow owns it; the matching core
// reads it and mutates only its status, always through a repository
// compare-and-swap rather than by saving the aggregate.
//
// Invariants:
//   - valid identifier and site location
//   - scheduled date with a well-formed same-day time window
//   - a known status
type Job struct {
	id            kernel.UUID
	location      kernel.Location
	scheduledDate time.Time
	window        kernel.TimeWindow
	status        Status
	guard         guard.ConstructorGuard
}

// NewJob creates a Pending job. scheduledDate is truncated to its calendar day
// in its own location.
//
// Example:
//
//	site, _ := kernel.NewLocation(28.5383, -81.3792)
//	window, _ := kernel.ParseTimeWindow("09:00-12:00")
//	j, err := job.NewJob(kernel.NewUUID(), site, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), window)
func NewJob(id kernel.UUID, location kernel.Location, scheduledDate time.Time, window kernel.TimeWindow) (*Job, error) {
	return RestoreJob(id, location, scheduledDate, window, Pending)
}

// RestoreJob reconstructs a Job from storage with its persisted status.
func RestoreJob(
	id kernel.UUID,
	location kernel.Location,
	scheduledDate time.Time,
	window kernel.TimeWindow,
	status Status,
) (*Job, error) {
	j := &Job{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setLocation(location),
		j.setSchedule(scheduledDate, window),
		j.setStatus(status),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// Validate ensures the Job was built through a constructor.
func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

// IsEqual compares jobs by identifier.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

func (j *Job) ID() kernel.UUID               { return j.id }
func (j *Job) Location() kernel.Location     { return j.location }
func (j *Job) ScheduledDate() time.Time      { return j.scheduledDate }
func (j *Job) TimeWindow() kernel.TimeWindow { return j.window }
func (j *Job) Status() Status                { return j.status }

// Weekday is the day of week the job is scheduled on.
func (j *Job) Weekday() kernel.Weekday {
	return kernel.WeekdayOf(j.scheduledDate)
}

// StartsAt combines the scheduled date with the window start.
func (j *Job) StartsAt() time.Time {
	return j.window.On(j.scheduledDate)
}

// IsOfferable reports whether offers may be extended for the job.
func (j *Job) IsOfferable() bool {
	return j.status.IsOfferable()
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	j.location = location
	return nil
}

func (j *Job) setSchedule(date time.Time, window kernel.TimeWindow) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("scheduledDate")
	}
	if err := window.Validate(); err != nil {
		return err
	}

	y, m, d := date.Date()
	j.scheduledDate = time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	j.window = window
	return nil
}

func (j *Job) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	j.status = status
	return nil
}
