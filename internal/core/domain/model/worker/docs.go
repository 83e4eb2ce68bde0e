// Package worker holds the Worker profile aggregate, its per-weekday
// availability and the reputation snapshot used for scoring.
package worker
