package strategy

import (
	"math/rand/v2"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/tzgroups/internal/availability"
	"github.com/mmynk/tzgroups/internal/models"
)

// roster is the read-only input shared by every trial of one run.
type roster struct {
	tokens []string
	weeks  []availability.Week // UTC
	size   int
}

// newRoster clamps groupSize to the roster length; a larger size still means
// a single group.
func newRoster(people []models.Person, groupSize int, p Params) roster {
	now := p.Now()
	r := roster{
		tokens: make([]string, len(people)),
		weeks:  make([]availability.Week, len(people)),
		size:   min(groupSize, max(len(people), 1)),
	}
	for i, person := range people {
		r.tokens[i] = person.Encode()
		r.weeks[i] = person.UTC(now)
	}
	return r
}

func (r roster) len() int {
	return len(r.tokens)
}

// numGroups is ceil(len / size), written so it cannot overflow.
func (r roster) numGroups() int {
	if r.len() == 0 {
		return 0
	}
	return 1 + (r.len()-1)/r.size
}

// group returns the slice of perm holding group g's member indices.
func (r roster) group(perm []int, g int) []int {
	start := g * r.size
	return perm[start:min(start+r.size, len(perm))]
}

// weeksOf fills buf with the members' UTC weeks.
func (r roster) weeksOf(members []int, buf []availability.Week) []availability.Week {
	buf = buf[:0]
	for _, i := range members {
		buf = append(buf, r.weeks[i])
	}
	return buf
}

// identity returns [0, 1, ..., len-1].
func (r roster) identity() []int {
	perm := make([]int, r.len())
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// groups materializes a partition. hours is called once per group with the
// members' UTC weeks and returns the group's suggested hours.
func (r roster) groups(perm []int, hours func([]availability.Week) []int) []models.Group {
	out := make([]models.Group, 0, r.numGroups())
	var buf []availability.Week
	for g := 0; g < r.numGroups(); g++ {
		members := r.group(perm, g)
		tokens := make([]string, len(members))
		for i, m := range members {
			tokens[i] = r.tokens[m]
		}
		slices.Sort(tokens)

		buf = r.weeksOf(members, buf)
		out = append(out, models.Group{
			Members:        tokens,
			SuggestedHours: hours(buf),
		})
	}
	slices.SortFunc(out, func(a, b models.Group) int {
		return strings.Compare(a.Members[0], b.Members[0])
	})
	return out
}

// seeds derives n independent PCG seeds from the run seed, in order, so a
// given seed produces the same per-trial streams regardless of worker count.
func seeds(seed uint64, n int) [][2]uint64 {
	if seed == 0 {
		seed = rand.Uint64() | 1
	}
	parent := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([][2]uint64, n)
	for i := range out {
		out[i] = [2]uint64{parent.Uint64(), parent.Uint64()}
	}
	return out
}

func newRand(s [2]uint64) *rand.Rand {
	return rand.New(rand.NewPCG(s[0], s[1]))
}

func workerCount(p Params) int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// forEach calls fn(i) for every i in [0, n), on up to workers goroutines.
// fn must only write state owned by index i.
func forEach(workers, n int, fn func(i int)) {
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
