// Package assignment implements the offer state machine.
//
// An Assignment links one worker to one job for a bounded time. It starts
// Pending and ends in exactly one of Accepted, Expired, Rejected or Cancelled.
// For a given job at most one Assignment is ever Accepted; once that happens
// every sibling is moved to a terminal non-accepted state.
//
// Transitions in this package are pure. Callers persist them with a
// storage-level compare-and-swap on the previous status and treat zero rows
// affected as a lost race.
package assignment
