package metrics

import "time"

// NopMetrics discards every observation.
type NopMetrics struct{}

var _ Collector = (*NopMetrics)(nil)

// NewNop creates a no-op collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordRun discards the run observation.
func (n *NopMetrics) RecordRun(_ string, _, _ int, _ time.Duration) {}

// RecordDroppedTokens discards the dropped token count.
func (n *NopMetrics) RecordDroppedTokens(_ int) {}

// RecordImprovements discards the improvement count.
func (n *NopMetrics) RecordImprovements(_ string, _ int) {}
