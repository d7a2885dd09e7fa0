package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector exports run metrics to Prometheus. Metrics are
// registered lazily on first use so an unused collector leaves the registry
// untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	runs         *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	people       prometheus.Histogram
	groups       prometheus.Histogram
	dropped      prometheus.Counter
	improvements *prometheus.HistogramVec
}

var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates a collector that registers its metrics on reg under
// namespace. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.runs = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "grouping",
			Name:      "runs_total",
			Help:      "Total grouping runs by strategy.",
		}, []string{"strategy"})

		p.runDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "grouping",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a grouping run by strategy.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"strategy"})

		p.people = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "grouping",
			Name:      "roster_people",
			Help:      "Decoded people per run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		})

		p.groups = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "grouping",
			Name:      "groups",
			Help:      "Groups produced per run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		})

		p.dropped = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "grouping",
			Name:      "dropped_tokens_total",
			Help:      "Tokens that failed to decode and were left out of a run.",
		})

		p.improvements = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "grouping",
			Name:      "accepted_moves",
			Help:      "Accepted moves per start or restart by strategy.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"strategy"})

		p.reg.MustRegister(p.runs)
		p.reg.MustRegister(p.runDuration)
		p.reg.MustRegister(p.people)
		p.reg.MustRegister(p.groups)
		p.reg.MustRegister(p.dropped)
		p.reg.MustRegister(p.improvements)
	})
}

// RecordRun observes a completed run.
func (p *PrometheusCollector) RecordRun(strategy string, people, groups int, duration time.Duration) {
	p.ensureRegistered()
	p.runs.WithLabelValues(strategy).Inc()
	p.runDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	p.people.Observe(float64(people))
	p.groups.Observe(float64(groups))
}

// RecordDroppedTokens adds n to the dropped token counter.
func (p *PrometheusCollector) RecordDroppedTokens(n int) {
	if n <= 0 {
		return
	}
	p.ensureRegistered()
	p.dropped.Add(float64(n))
}

// RecordImprovements observes the accepted moves of one start or restart.
func (p *PrometheusCollector) RecordImprovements(strategy string, n int) {
	p.ensureRegistered()
	p.improvements.WithLabelValues(strategy).Observe(float64(n))
}
