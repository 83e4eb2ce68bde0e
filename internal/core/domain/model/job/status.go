package job

import (
	"fmt"
	"strings"

	"jobmatch/internal/pkg/errs"
)

// Status is the lifecycle state of a job as seen by the matching core.
//
// State transitions:
//
//	Pending ──(offer extended)──> Assigned ──(offer accepted)──> Accepted
//	   ^                             │                               │
//	   └─────(no candidate left)─────┘                          (check-in)
//	                                                                 v
//	                                      Completed <──────── InProgress
//
// Cancelled is set by the booking flow and is terminal, like Completed.
// A job may also move from Pending straight to Accepted when a claim races
// ahead of the Assigned update.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Pending jobs are booked and have no outstanding offer.
	Pending

	// Assigned jobs have at least one offer awaiting a response.
	Assigned

	// Accepted jobs have exactly one worker who won the offer race.
	Accepted

	// InProgress jobs passed the check-in geofence.
	InProgress

	// Completed is terminal.
	Completed

	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Assigned:   "ASSIGNED",
		Accepted:   "ACCEPTED",
		InProgress: "IN_PROGRESS",
		Completed:  "COMPLETED",
		Cancelled:  "CANCELLED",
	}
}

// ParseStatus maps the external string form back to a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a job status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. read from storage.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid job status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsOfferable reports whether new offers may be extended or accepted.
func (s Status) IsOfferable() bool {
	return s == Pending || s == Assigned
}

// ValidateOffer checks that a new offer may be extended for the job.
func (s Status) ValidateOffer() error {
	if !s.IsOfferable() {
		return s.invalidFor("extend an offer")
	}
	return nil
}

// ValidateAccept checks that an offer for the job may still be accepted.
// A job already past Assigned is reported as claimed, not as a logic error.
func (s Status) ValidateAccept() error {
	if s.IsOfferable() {
		return nil
	}
	if s == Accepted || s == InProgress || s == Completed {
		return errs.NewAlreadyClaimedErrorWithCause("job", s.String(),
			fmt.Errorf("%s is not a status that accepts offers", s))
	}
	return s.invalidFor("accept an offer")
}

// ValidateStart checks that the job may enter execution.
func (s Status) ValidateStart() error {
	if s != Accepted {
		return s.invalidFor("start")
	}
	return nil
}

// ValidateComplete checks that the job may be completed.
func (s Status) ValidateComplete() error {
	if s != InProgress {
		return s.invalidFor("complete")
	}
	return nil
}

func (s Status) invalidFor(action string) error {
	return errs.NewInvalidStateErrorWithCause("job status",
		fmt.Errorf("%s is not a valid status to %s", s, action))
}
