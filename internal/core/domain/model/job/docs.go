// Package job holds the Job aggregate consumed by the matching core.
//
// Jobs are created by the booking flow. The core only reads them, except for
// status changes, which are applied with conditional updates so that
// concurrent accept attempts resolve to a single winner:
//   - Pending: booked, no outstanding offer
//   - Assigned: one or more offers outstanding
//   - Accepted: a worker claimed the job
//   - InProgress: the worker checked in on site
//   - Completed / Cancelled: terminal
package job
