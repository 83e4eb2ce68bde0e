// Package services provides the pure domain services of the matching core.
//
// The package includes:
//   - MatchScorer: weighted fitness score with an explainable breakdown
//   - CandidateFinder: hard filters and deterministic ranking of workers for a job
//   - Geofence: great-circle radius membership used by the check-in gate
//   - Settings: the externally supplied configuration the services consume
//
// Nothing here performs I/O. Application handlers load aggregates, call these
// services and persist the outcome.
package services
