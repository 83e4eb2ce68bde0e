// Package kernel provides the value objects shared by the job-matching domain.
//
// The package includes:
//   - UUID and UUIDSet: identifiers for jobs, workers and offers
//   - Location: a validated WGS84 coordinate with haversine distance
//   - Weekday: a closed enumeration keying per-day availability
//   - ClockTime and TimeWindow: same-day intervals parsed from "HH:MM-HH:MM"
//
// Every value object is immutable and rejects invalid input at construction;
// zero values fail Validate.
package kernel
