// Package metrics records grouping runs.
//
// Two collectors are provided: NewNop discards everything and is the default
// for library callers and tests, NewPrometheus exports counters and
// histograms on a prometheus.Registerer.
package metrics

import "time"

// Collector receives one observation per grouping run.
type Collector interface {
	// RecordRun observes a completed run of the named strategy.
	RecordRun(strategy string, people, groups int, duration time.Duration)
	// RecordDroppedTokens counts tokens that failed to decode.
	RecordDroppedTokens(n int)
	// RecordImprovements observes how many moves one start or restart accepted.
	RecordImprovements(strategy string, n int)
}
