package assignment

import (
	"fmt"

	"jobmatch/internal/pkg/errs"
)

// Status is the state of a single offer.
//
// State transitions:
//
//	          ┌──(accepted before expiresAt)──> Accepted
//	          ├──(expiresAt elapsed)──────────> Expired
//	Pending ──┤
//	          ├──(worker declined)────────────> Rejected
//	          └──(sibling accepted first)─────> Cancelled
//
// Every state other than Pending is terminal.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Pending offers await a response until expiresAt.
	Pending

	// Accepted is terminal-success. At most one offer per job holds it.
	Accepted

	// Expired offers received no response in time.
	Expired

	// Rejected offers were declined by the worker.
	Rejected

	// Cancelled offers lost to a sibling that was accepted first.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Accepted:  "ACCEPTED",
		Expired:   "EXPIRED",
		Rejected:  "REJECTED",
		Cancelled: "CANCELLED",
	}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid offer status", s))
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
	return s != Pending
}

// accept resolves the outcome of an accept attempt from s. Offers that
// someone or something else already closed are reported as claimed; offers
// the caller closed themselves are a logic error.
func (s Status) accept() (Status, error) {
	switch s {
	case Pending:
		return Accepted, nil
	case Expired, Cancelled:
		return 0, errs.NewAlreadyClaimedErrorWithCause("offer", s.String(),
			fmt.Errorf("offer is %s", s))
	default:
		return 0, s.invalidFor("accept")
	}
}

func (s Status) transition(next Status, action string) (Status, error) {
	if s != Pending {
		return 0, s.invalidFor(action)
	}
	return next, nil
}

func (s Status) invalidFor(action string) error {
	return errs.NewInvalidStateErrorWithCause("offer status",
		fmt.Errorf("%s is not a valid status to %s", s, action))
}
