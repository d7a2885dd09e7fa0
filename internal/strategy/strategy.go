// Package strategy partitions a roster into fixed-size groups using
// randomized local search.
//
// Three strategies are available:
//   - RandomSearch: many independent shuffles, keep the best overlap score
//   - HillClimbing: random starts improved by single swaps until stuck
//   - MinMaxBalance: pairwise swaps between teams that raise the weakest
//     team's compliance score
//
// Every strategy is a pure function of its input plus a random source seeded
// from Params.Seed. Trials never share mutable state, so they may run on any
// number of workers; the only synchronization point is the final reduction.
package strategy

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/tzgroups/internal/models"
)

// Strategy assigns people to groups of groupSize. The last group may be
// smaller. An empty roster or a non-positive groupSize yields no groups.
//
// Output is deterministic in shape: members of each group are sorted by
// token and groups are sorted by their first member. The order carries no
// ranking.
type Strategy interface {
	Run(people []models.Person, groupSize int) []models.Group
}

// Kind selects one of the available strategies.
type Kind int

const (
	// KindHillClimbing is the default.
	KindHillClimbing Kind = iota
	KindRandomSearch
	KindMinMaxBalance
)

var kindNames = map[Kind]string{
	KindHillClimbing:  "hillclimb",
	KindRandomSearch:  "random",
	KindMinMaxBalance: "minmax",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists every strategy kind.
func Kinds() []Kind {
	return []Kind{KindHillClimbing, KindRandomSearch, KindMinMaxBalance}
}

// ParseKind accepts the String form of a Kind, case-insensitively. The empty
// string selects the default.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hillclimb", "hillclimbing", "hill-climbing":
		return KindHillClimbing, nil
	case "random", "randomsearch", "random-search":
		return KindRandomSearch, nil
	case "minmax", "minmaxbalance", "min-max":
		return KindMinMaxBalance, nil
	}
	return 0, fmt.Errorf("unknown strategy %q", s)
}

// TraceFunc receives the score history of one start (HillClimbing) or
// restart (MinMaxBalance): the initial score followed by the score after
// every accepted move. It is called sequentially after the run completes.
type TraceFunc func(start int, scores []float64)

// Params tunes the strategies. Zero fields take the value from DefaultParams.
type Params struct {
	// Trials is the number of independent shuffles RandomSearch scores.
	Trials int
	// Starts is the number of random starting partitions HillClimbing climbs from.
	Starts int
	// Patience is how many consecutive non-improving swaps end a climb.
	Patience int
	// Restarts is the number of random partitions MinMaxBalance refines.
	Restarts int
	// MaxPasses caps full team-pair sweeps per MinMaxBalance restart.
	MaxPasses int

	// Seed makes a run reproducible. Zero draws a fresh seed per run.
	Seed uint64
	// Workers bounds parallelism. 1 runs everything on the calling goroutine;
	// zero or less uses GOMAXPROCS.
	Workers int
	// Now returns the instant used to normalize availability to UTC.
	Now func() time.Time
	// Trace, when set, receives per-start score histories.
	Trace TraceFunc
}

// DefaultParams are the tuned iteration caps.
var DefaultParams = Params{
	Trials:    100_000,
	Starts:    100,
	Patience:  1_000,
	Restarts:  100,
	MaxPasses: 20,
}

func (p Params) withDefaults() Params {
	if p.Trials <= 0 {
		p.Trials = DefaultParams.Trials
	}
	if p.Starts <= 0 {
		p.Starts = DefaultParams.Starts
	}
	if p.Patience <= 0 {
		p.Patience = DefaultParams.Patience
	}
	if p.Restarts <= 0 {
		p.Restarts = DefaultParams.Restarts
	}
	if p.MaxPasses <= 0 {
		p.MaxPasses = DefaultParams.MaxPasses
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return p
}

// New builds the strategy selected by kind.
func New(kind Kind, params Params) (Strategy, error) {
	switch kind {
	case KindHillClimbing:
		return NewHillClimbing(params), nil
	case KindRandomSearch:
		return NewRandomSearch(params), nil
	case KindMinMaxBalance:
		return NewMinMaxBalance(params), nil
	}
	return nil, fmt.Errorf("unknown strategy %v", kind)
}
