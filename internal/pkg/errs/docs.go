// Package errs provides the error taxonomy shared by every layer of the
// matching engine.
//
// Each kind follows the same shape:
//   - a sentinel error variable (e.g., ErrAlreadyClaimed)
//   - a struct type carrying the offending parameter or resource
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Kinds:
//   - ObjectNotFoundError: job, worker or offer missing
//   - ForbiddenError: the actor does not own the offer or job
//   - InvalidStateError: operation attempted from a state that forbids it
//   - AlreadyClaimedError: race lost, or offer deadline passed
//   - ValueIsInvalidError, ValueIsOutOfRangeError, ValueIsRequiredError: malformed input
//
// AlreadyClaimed and InvalidState are distinct: the first is a
// normal outcome shown to the worker as "this job is no longer available",
// the second signals a caller bug.
package errs
