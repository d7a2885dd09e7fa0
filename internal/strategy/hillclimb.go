package strategy

import (
	"math/rand/v2"

	"github.com/mmynk/tzgroups/internal/availability"
	"github.com/mmynk/tzgroups/internal/models"
	"github.com/mmynk/tzgroups/internal/scoring"
)

// HillClimbing climbs from Params.Starts random partitions. Each step swaps
// two random positions (possibly within the same group) and keeps the swap
// only if the total overlap score strictly improves. A climb ends after
// Params.Patience consecutive rejected swaps. The best final partition wins.
type HillClimbing struct {
	params Params
}

var _ Strategy = (*HillClimbing)(nil)

// NewHillClimbing creates a HillClimbing strategy.
func NewHillClimbing(params Params) *HillClimbing {
	return &HillClimbing{params: params.withDefaults()}
}

type climb struct {
	perm    []int
	score   int
	history []float64
}

// Run implements Strategy.
func (s *HillClimbing) Run(people []models.Person, groupSize int) []models.Group {
	if len(people) == 0 || groupSize <= 0 {
		return nil
	}
	r := newRoster(people, groupSize, s.params)

	streams := seeds(s.params.Seed, s.params.Starts)
	climbs := make([]climb, s.params.Starts)
	forEach(workerCount(s.params), s.params.Starts, func(i int) {
		climbs[i] = r.climb(newRand(streams[i]), s.params.Patience)
	})

	best := 0
	for i := range climbs {
		if climbs[i].score > climbs[best].score {
			best = i
		}
	}
	if s.params.Trace != nil {
		for i, c := range climbs {
			s.params.Trace(i, c.history)
		}
	}
	return r.groups(climbs[best].perm, overlapHours)
}

func (r roster) climb(rng *rand.Rand, patience int) climb {
	perm := r.identity()
	rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

	var buf []availability.Week
	groupScore := func(g int) int {
		buf = r.weeksOf(r.group(perm, g), buf)
		return scoring.OverlapScore(buf)
	}

	scores := make([]int, r.numGroups())
	total := 0
	for g := range scores {
		scores[g] = groupScore(g)
		total += scores[g]
	}
	c := climb{score: total, history: []float64{float64(total)}}

	for stale := 0; stale < patience; {
		a, b := rng.IntN(len(perm)), rng.IntN(len(perm))
		ga, gb := a/r.size, b/r.size
		if ga == gb {
			// Same-group swaps cannot change the score.
			stale++
			continue
		}

		perm[a], perm[b] = perm[b], perm[a]
		sa, sb := groupScore(ga), groupScore(gb)
		candidate := total - scores[ga] - scores[gb] + sa + sb
		if candidate > total {
			scores[ga], scores[gb] = sa, sb
			total = candidate
			c.history = append(c.history, float64(total))
			stale = 0
		} else {
			perm[a], perm[b] = perm[b], perm[a]
			stale++
		}
	}

	c.perm = perm
	c.score = total
	return c
}
