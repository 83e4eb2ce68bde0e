package assignment

import (
	"errors"
	"fmt"
	"math"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"
	"jobmatch/internal/pkg/guard"
)

// DefaultOfferWindow is how long a worker has to respond to an offer.
const DefaultOfferWindow = 15 * time.Minute

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment was not created via NewOffer or RestoreAssignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewOffer or RestoreAssignment constructor")
)

// Assignment is a time-boxed offer linking one worker to one job. Records are
// never deleted; only the status moves.
//
// The methods below are pure transitions on the in-memory value. Persisting a
// transition is a separate conditional update keyed on the status the
// transition started from, so that only one of several racing writers wins.
type Assignment struct {
	id         kernel.UUID
	jobID      kernel.UUID
	workerID   kernel.UUID
	status     Status
	matchScore float64
	expiresAt  time.Time
	acceptedAt *time.Time
	createdAt  time.Time
	updatedAt  time.Time
	guard      guard.ConstructorGuard
}

// NewOffer creates a Pending offer that expires window after now.
// matchScore is the score at the time of the offer, kept for audit.
//
// Example:
//
//	offer, err := assignment.NewOffer(jobID, workerID, 0.93, clock.Now(), assignment.DefaultOfferWindow)
func NewOffer(jobID, workerID kernel.UUID, matchScore float64, now time.Time, window time.Duration) (*Assignment, error) {
	if window <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("offerWindow", fmt.Errorf("%s is not positive", window))
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}

	return RestoreAssignment(kernel.NewUUID(), jobID, workerID, Pending, matchScore, now.Add(window), nil, now, now)
}

// RestoreAssignment reconstructs an Assignment from storage.
func RestoreAssignment(
	id, jobID, workerID kernel.UUID,
	status Status,
	matchScore float64,
	expiresAt time.Time,
	acceptedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Assignment, error) {
	a := &Assignment{
		expiresAt:  expiresAt,
		acceptedAt: acceptedAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setUUID(&a.id, id),
		setUUID(&a.jobID, jobID),
		setUUID(&a.workerID, workerID),
		a.setStatus(status, acceptedAt),
		a.setMatchScore(matchScore),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) IsEqual(other *Assignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

func (a *Assignment) ID() kernel.UUID        { return a.id }
func (a *Assignment) JobID() kernel.UUID     { return a.jobID }
func (a *Assignment) WorkerID() kernel.UUID  { return a.workerID }
func (a *Assignment) Status() Status         { return a.status }
func (a *Assignment) MatchScore() float64    { return a.matchScore }
func (a *Assignment) ExpiresAt() time.Time   { return a.expiresAt }
func (a *Assignment) AcceptedAt() *time.Time { return a.acceptedAt }
func (a *Assignment) CreatedAt() time.Time   { return a.createdAt }
func (a *Assignment) UpdatedAt() time.Time   { return a.updatedAt }

// IsExpiredAt reports whether a Pending offer has passed its deadline at now.
// The deadline itself is still inside the window.
func (a *Assignment) IsExpiredAt(now time.Time) bool {
	return a.status == Pending && now.After(a.expiresAt)
}

// IsOwnedBy reports whether the offer was extended to workerID.
func (a *Assignment) IsOwnedBy(workerID kernel.UUID) bool {
	return a.workerID.IsEqual(workerID)
}

// Accept moves a Pending offer to Accepted on behalf of workerID.
//
// Outcomes:
//   - Forbidden when workerID does not own the offer
//   - AlreadyClaimed when now is past expiresAt, even if no sweep ran yet,
//     or when the offer was already expired or cancelled
//   - InvalidState when the offer was already rejected or accepted
func (a *Assignment) Accept(workerID kernel.UUID, now time.Time) error {
	if err := a.checkOwner(workerID); err != nil {
		return err
	}
	if a.IsExpiredAt(now) {
		return errs.NewAlreadyClaimedErrorWithCause("offer", a.id.String(),
			fmt.Errorf("offer expired at %s", a.expiresAt.Format(time.RFC3339)))
	}

	next, err := a.status.accept()
	if err != nil {
		return err
	}

	a.status = next
	a.acceptedAt = &now
	a.updatedAt = now
	return nil
}

// Reject moves a Pending offer to Rejected on behalf of workerID.
func (a *Assignment) Reject(workerID kernel.UUID, now time.Time) error {
	if err := a.checkOwner(workerID); err != nil {
		return err
	}
	return a.moveTo(Rejected, "reject", now)
}

// Expire moves a Pending offer whose deadline passed to Expired.
func (a *Assignment) Expire(now time.Time) error {
	if a.status == Pending && !a.IsExpiredAt(now) {
		return errs.NewInvalidStateErrorWithCause("offer status",
			fmt.Errorf("offer does not expire until %s", a.expiresAt.Format(time.RFC3339)))
	}
	return a.moveTo(Expired, "expire", now)
}

// Cancel moves a Pending offer to Cancelled after a sibling was accepted.
func (a *Assignment) Cancel(now time.Time) error {
	return a.moveTo(Cancelled, "cancel", now)
}

func (a *Assignment) moveTo(next Status, action string, now time.Time) error {
	status, err := a.status.transition(next, action)
	if err != nil {
		return err
	}
	a.status = status
	a.updatedAt = now
	return nil
}

func (a *Assignment) checkOwner(workerID kernel.UUID) error {
	if !a.IsOwnedBy(workerID) {
		return errs.NewForbiddenError("offer", a.id.String(), workerID.String())
	}
	return nil
}

func setUUID(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	*dst = id
	return nil
}

func (a *Assignment) setStatus(status Status, acceptedAt *time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == Accepted && acceptedAt == nil {
		return errs.NewValueIsRequiredErrorWithCause("acceptedAt", errors.New("accepted offers carry an acceptance time"))
	}
	a.status = status
	return nil
}

func (a *Assignment) setMatchScore(score float64) error {
	if math.IsNaN(score) || score < 0 || score > 1 {
		return errs.NewValueIsOutOfRangeError("matchScore", score, 0, 1)
	}
	a.matchScore = score
	return nil
}
