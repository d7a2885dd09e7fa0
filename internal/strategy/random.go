package strategy

import (
	"math/rand/v2"

	"github.com/mmynk/tzgroups/internal/availability"
	"github.com/mmynk/tzgroups/internal/models"
	"github.com/mmynk/tzgroups/internal/scoring"
)

// RandomSearch scores Params.Trials independent random partitions with the
// overlap-consecutive score and keeps the best one.
type RandomSearch struct {
	params Params
}

var _ Strategy = (*RandomSearch)(nil)

// NewRandomSearch creates a RandomSearch strategy.
func NewRandomSearch(params Params) *RandomSearch {
	return &RandomSearch{params: params.withDefaults()}
}

type searchResult struct {
	perm  []int
	score int
}

// Run implements Strategy.
func (s *RandomSearch) Run(people []models.Person, groupSize int) []models.Group {
	if len(people) == 0 || groupSize <= 0 {
		return nil
	}
	r := newRoster(people, groupSize, s.params)

	// Trials are split into one shard per worker; each shard reduces its own
	// trials so only O(workers) partitions are alive at once.
	shards := min(workerCount(s.params), s.params.Trials)
	streams := seeds(s.params.Seed, shards)
	results := make([]searchResult, shards)

	forEach(shards, shards, func(shard int) {
		trials := s.params.Trials / shards
		if shard < s.params.Trials%shards {
			trials++
		}
		results[shard] = r.search(newRand(streams[shard]), trials)
	})

	best := results[0]
	for _, res := range results[1:] {
		if res.score > best.score {
			best = res
		}
	}
	return r.groups(best.perm, overlapHours)
}

func (r roster) search(rng *rand.Rand, trials int) searchResult {
	perm := r.identity()
	best := searchResult{score: -1}
	var buf []availability.Week
	for t := 0; t < trials; t++ {
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

		score := 0
		for g := 0; g < r.numGroups(); g++ {
			buf = r.weeksOf(r.group(perm, g), buf)
			score += scoring.OverlapScore(buf)
		}
		if score > best.score {
			best.score = score
			best.perm = append(best.perm[:0], perm...)
		}
	}
	return best
}

func overlapHours(weeks []availability.Week) []int {
	return scoring.Overlap(weeks).Hours
}
