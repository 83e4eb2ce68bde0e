// Package commands contains the state-changing operations of the matching core.
//
// Every handler follows the same shape: validate the command, open a unit of
// work, load aggregates, apply a pure domain transition, persist it with a
// conditional write, commit, and only then fire notifications. A conditional
// write that affects nothing is a lost race and surfaces as
// errs.ErrAlreadyClaimed or errs.ErrInvalidState, never as success.
package commands
