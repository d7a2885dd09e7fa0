// Package grouping is the entry point for turning a batch of encoded tokens
// into groups. It decodes every token independently, drops the ones that fail,
// and hands the rest to the selected strategy.
package grouping

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tzgroups/internal/availability"
	"github.com/mmynk/tzgroups/internal/metrics"
	"github.com/mmynk/tzgroups/internal/models"
	"github.com/mmynk/tzgroups/internal/scoring"
	"github.com/mmynk/tzgroups/internal/strategy"
)

// Engine runs strategies over decoded rosters.
type Engine struct {
	params  strategy.Params
	metrics metrics.Collector
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithParams sets the base strategy parameters used by every run.
func WithParams(p strategy.Params) Option {
	return func(e *Engine) {
		e.params = p
	}
}

// WithMetrics sets the metrics collector. The default discards everything.
func WithMetrics(c metrics.Collector) Option {
	return func(e *Engine) {
		if c != nil {
			e.metrics = c
		}
	}
}

// WithClock sets the clock used to normalize availability to UTC.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		metrics: metrics.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request is one grouping run.
type Request struct {
	Tokens    []string
	GroupSize int
	Strategy  strategy.Kind
	// Seed overrides the engine's seed. When both are zero a fresh seed is
	// drawn and reported in Result.Seed.
	Seed uint64
}

// Result is the outcome of one run.
type Result struct {
	RunID    string
	Strategy strategy.Kind
	Seed     uint64
	Groups   []models.Group
	// Coverage[i] is the fraction of Groups[i] free at its first suggested
	// hour, or 0 when the group has no suggested hours.
	Coverage []float64
	Decoded  int
	Dropped  int
	Duration time.Duration
}

// Run decodes req.Tokens, dropping malformed ones, and partitions the rest.
// The only error is an unknown strategy kind.
func (e *Engine) Run(req Request) (Result, error) {
	start := time.Now()
	res := Result{
		RunID:    uuid.NewString(),
		Strategy: req.Strategy,
	}

	people := make([]models.Person, 0, len(req.Tokens))
	for i, token := range req.Tokens {
		p, err := models.DecodePerson(token)
		if err != nil {
			slog.Debug("Dropping token", "run_id", res.RunID, "index", i, "error", err)
			res.Dropped++
			continue
		}
		people = append(people, p)
	}
	res.Decoded = len(people)
	e.metrics.RecordDroppedTokens(res.Dropped)

	params := e.params
	if req.Seed != 0 {
		params.Seed = req.Seed
	}
	if params.Seed == 0 {
		params.Seed = rand.Uint64() | 1
	}
	res.Seed = params.Seed

	at := e.now()
	params.Now = func() time.Time { return at }

	userTrace := params.Trace
	name := req.Strategy.String()
	params.Trace = func(i int, scores []float64) {
		e.metrics.RecordImprovements(name, len(scores)-1)
		if userTrace != nil {
			userTrace(i, scores)
		}
	}

	s, err := strategy.New(req.Strategy, params)
	if err != nil {
		return res, fmt.Errorf("create groups: %w", err)
	}
	res.Groups = s.Run(people, req.GroupSize)
	res.Coverage = coverage(res.Groups, people, at)
	res.Duration = time.Since(start)

	e.metrics.RecordRun(name, res.Decoded, len(res.Groups), res.Duration)
	slog.Debug("Groups created",
		"run_id", res.RunID,
		"strategy", name,
		"seed", res.Seed,
		"decoded", res.Decoded,
		"dropped", res.Dropped,
		"groups", len(res.Groups),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// CreateGroups decodes tokens, silently dropping malformed ones, and assigns
// the rest to groups of groupSize with the given strategy. An empty roster or
// a non-positive groupSize yields no groups.
func (e *Engine) CreateGroups(tokens []string, groupSize int, kind strategy.Kind) []models.Group {
	res, err := e.Run(Request{Tokens: tokens, GroupSize: groupSize, Strategy: kind})
	if err != nil {
		slog.Warn("CreateGroups failed", "error", err)
		return nil
	}
	return res.Groups
}

// CreateGroups runs a default Engine.
func CreateGroups(tokens []string, groupSize int, kind strategy.Kind) []models.Group {
	return NewEngine().CreateGroups(tokens, groupSize, kind)
}

func coverage(groups []models.Group, people []models.Person, at time.Time) []float64 {
	weeks := make(map[string]availability.Week, len(people))
	for _, p := range people {
		weeks[p.Encode()] = p.UTC(at)
	}

	out := make([]float64, len(groups))
	var buf []availability.Week
	for i, g := range groups {
		if len(g.SuggestedHours) == 0 {
			continue
		}
		buf = buf[:0]
		for _, token := range g.Members {
			buf = append(buf, weeks[token])
		}
		out[i] = scoring.Coverage(buf, g.SuggestedHours[0])
	}
	return out
}
