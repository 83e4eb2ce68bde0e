package errs

import "fmt"

// ForbiddenError is returned when the acting party does not own the resource
// it is trying to change.
type ForbiddenError struct {
	Resource string
	ID       any
	ActorID  any
}

func NewForbiddenError(resource string, id, actorID any) *ForbiddenError {
	return &ForbiddenError{Resource: resource, ID: id, ActorID: actorID}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s %s does not belong to %s", ErrForbidden, e.Resource, e.ID, e.ActorID)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidStateError is returned when an operation is attempted from a state that
// does not permit it.
type InvalidStateError struct {
	ParamName string
	Cause     error
}

func NewInvalidStateError(paramName string) *InvalidStateError {
	return &InvalidStateError{ParamName: paramName}
}

func NewInvalidStateErrorWithCause(paramName string, cause error) *InvalidStateError {
	return &InvalidStateError{ParamName: paramName, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrInvalidState, e.ParamName), e.Cause)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// AlreadyClaimedError is returned to the loser of a race for a contested
// resource, and to anyone acting on an offer whose deadline has passed.
// It is an expected outcome rather than a fault.
type AlreadyClaimedError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewAlreadyClaimedError(paramName string, id any) *AlreadyClaimedError {
	return &AlreadyClaimedError{ParamName: paramName, ID: id}
}

func NewAlreadyClaimedErrorWithCause(paramName string, id any, cause error) *AlreadyClaimedError {
	return &AlreadyClaimedError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *AlreadyClaimedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrAlreadyClaimed, e.ParamName, e.ID), e.Cause)
}

func (e *AlreadyClaimedError) Unwrap() error {
	return ErrAlreadyClaimed
}
