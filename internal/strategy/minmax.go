package strategy

import (
	"math/rand/v2"
	"slices"

	"github.com/mmynk/tzgroups/internal/availability"
	"github.com/mmynk/tzgroups/internal/models"
	"github.com/mmynk/tzgroups/internal/scoring"
)

// MinMaxBalance maximizes the weakest team's compliance score rather than the
// total, so no team is left with a schedule that barely overlaps.
//
// Each of Params.Restarts random partitions is refined by sweeps over every
// pair of teams and every pair of members across them: a swap is kept only if
// it strictly raises the lower of the two teams' scores. A sweep with no
// accepted swap ends the restart early; otherwise at most Params.MaxPasses
// sweeps run. Suggested hours are the hours every member shares.
type MinMaxBalance struct {
	params Params
}

var _ Strategy = (*MinMaxBalance)(nil)

// NewMinMaxBalance creates a MinMaxBalance strategy.
func NewMinMaxBalance(params Params) *MinMaxBalance {
	return &MinMaxBalance{params: params.withDefaults()}
}

type balance struct {
	perm    []int
	minimum float64
	history []float64
}

// Run implements Strategy.
func (s *MinMaxBalance) Run(people []models.Person, groupSize int) []models.Group {
	if len(people) == 0 || groupSize <= 0 {
		return nil
	}
	r := newRoster(people, groupSize, s.params)

	streams := seeds(s.params.Seed, s.params.Restarts)
	results := make([]balance, s.params.Restarts)
	forEach(workerCount(s.params), s.params.Restarts, func(i int) {
		results[i] = r.balance(newRand(streams[i]), s.params.MaxPasses)
	})

	best := 0
	for i := range results {
		if results[i].minimum > results[best].minimum {
			best = i
		}
	}
	if s.params.Trace != nil {
		for i, b := range results {
			s.params.Trace(i, b.history)
		}
	}
	return r.groups(results[best].perm, commonHours)
}

func (r roster) balance(rng *rand.Rand, maxPasses int) balance {
	perm := r.identity()
	rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

	var buf []availability.Week
	teamScore := func(t int) float64 {
		buf = r.weeksOf(r.group(perm, t), buf)
		return scoring.ComplianceOf(scoring.Common(buf))
	}

	teams := r.numGroups()
	scores := make([]float64, teams)
	for t := range scores {
		scores[t] = teamScore(t)
	}
	b := balance{history: []float64{slices.Min(scores)}}

	for pass := 0; pass < maxPasses; pass++ {
		accepted := 0
		for ta := 0; ta < teams; ta++ {
			for tb := ta + 1; tb < teams; tb++ {
				startA, startB := ta*r.size, tb*r.size
				endA, endB := startA+len(r.group(perm, ta)), startB+len(r.group(perm, tb))
				for i := startA; i < endA; i++ {
					for j := startB; j < endB; j++ {
						floor := min(scores[ta], scores[tb])
						perm[i], perm[j] = perm[j], perm[i]
						sa, sb := teamScore(ta), teamScore(tb)
						if min(sa, sb) > floor {
							scores[ta], scores[tb] = sa, sb
							accepted++
							b.history = append(b.history, slices.Min(scores))
						} else {
							perm[i], perm[j] = perm[j], perm[i]
						}
					}
				}
			}
		}
		if accepted == 0 {
			break
		}
	}

	b.perm = perm
	b.minimum = slices.Min(scores)
	return b
}

func commonHours(weeks []availability.Week) []int {
	return scoring.Compliance(weeks).Hours
}
