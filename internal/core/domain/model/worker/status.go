package worker

import (
	"fmt"
	"strings"

	"jobmatch/internal/pkg/errs"
)

// OperationalStatus is the onboarding-controlled state of a worker profile.
// Profiles are soft-deactivated, never deleted.
type OperationalStatus int

const (
	Unknown OperationalStatus = iota
	Active
	Suspended
	Inactive
)

func getStatusStrings() map[OperationalStatus]string {
	return map[OperationalStatus]string{
		Unknown:   "UNKNOWN",
		Active:    "ACTIVE",
		Suspended: "SUSPENDED",
		Inactive:  "INACTIVE",
	}
}

func ParseOperationalStatus(s string) (OperationalStatus, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a worker status", s))
}

func (s OperationalStatus) Validate() error {
	if s <= Unknown || s > Inactive {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid worker status", s))
	}
	return nil
}

func (s OperationalStatus) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
