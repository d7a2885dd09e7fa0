package strategy

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/tzgroups/internal/availability"
	"github.com/mmynk/tzgroups/internal/models"
	"github.com/mmynk/tzgroups/internal/synthetic"
)

var fixedNow = time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)

func testParams() Params {
	return Params{
		Trials:    5_000,
		Starts:    20,
		Patience:  300,
		Restarts:  10,
		MaxPasses: 20,
		Seed:      42,
		Now:       func() time.Time { return fixedNow },
	}
}

func decodeAll(t *testing.T, tokens []string) []models.Person {
	t.Helper()
	people := make([]models.Person, len(tokens))
	for i, tok := range tokens {
		p, err := models.DecodePerson(tok)
		require.NoError(t, err)
		people[i] = p
	}
	return people
}

func hours(from, to int) string {
	b := []byte(strings.Repeat("0", availability.HoursPerWeek))
	for h := from; h < to; h++ {
		b[h] = '1'
	}
	return string(b)
}

// Four pairs with identical 4-hour windows; only matching partners overlap.
var pairedTokens = []string{
	"VGVzdDF8QWZyaWNhL0FiaWRqYW58MTkyMHwwfDB8MHwwfDA=",
	"VGVzdDN8QWZyaWNhL0FiaWRqYW58MzA3MjB8MHwwfDB8MHww",
	"VGVzdDV8QWZyaWNhL0FiaWRqYW58NDkxNTIwfDB8MHwwfDB8MA==",
	"VGVzdDd8QWZyaWNhL0FiaWRqYW58Nzg2NDMyMHwwfDB8MHwwfDA=",
	"VGVzdDJ8QWZyaWNhL0FiaWRqYW58MTkyMHwwfDB8MHwwfDA=",
	"VGVzdDR8QWZyaWNhL0FiaWRqYW58MzA3MjB8MHwwfDB8MHww",
	"VGVzdDZ8QWZyaWNhL0FiaWRqYW58NDkxNTIwfDB8MHwwfDB8MA==",
	"VGVzdDh8QWZyaWNhL0FiaWRqYW58Nzg2NDMyMHwwfDB8MHwwfDA=",
}

var pairedGroups = []models.Group{
	{
		Members: []string{
			"VGVzdDF8QWZyaWNhL0FiaWRqYW58MTkyMHwwfDB8MHwwfDA=",
			"VGVzdDJ8QWZyaWNhL0FiaWRqYW58MTkyMHwwfDB8MHwwfDA=",
		},
		SuggestedHours: []int{7, 8, 9, 10},
	},
	{
		Members: []string{
			"VGVzdDN8QWZyaWNhL0FiaWRqYW58MzA3MjB8MHwwfDB8MHww",
			"VGVzdDR8QWZyaWNhL0FiaWRqYW58MzA3MjB8MHwwfDB8MHww",
		},
		SuggestedHours: []int{11, 12, 13, 14},
	},
	{
		Members: []string{
			"VGVzdDV8QWZyaWNhL0FiaWRqYW58NDkxNTIwfDB8MHwwfDB8MA==",
			"VGVzdDZ8QWZyaWNhL0FiaWRqYW58NDkxNTIwfDB8MHwwfDB8MA==",
		},
		SuggestedHours: []int{15, 16, 17, 18},
	},
	{
		Members: []string{
			"VGVzdDd8QWZyaWNhL0FiaWRqYW58Nzg2NDMyMHwwfDB8MHwwfDA=",
			"VGVzdDh8QWZyaWNhL0FiaWRqYW58Nzg2NDMyMHwwfDB8MHwwfDA=",
		},
		SuggestedHours: []int{19, 20, 21, 22},
	},
}

func allStrategies(p Params) map[string]Strategy {
	return map[string]Strategy{
		"random":    NewRandomSearch(p),
		"hillclimb": NewHillClimbing(p),
		"minmax":    NewMinMaxBalance(p),
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, parsed)
	}

	k, err := ParseKind("")
	require.NoError(t, err)
	require.Equal(t, KindHillClimbing, k)

	k, err = ParseKind("  MinMax ")
	require.NoError(t, err)
	require.Equal(t, KindMinMaxBalance, k)

	_, err = ParseKind("simulated-annealing")
	require.Error(t, err)

	_, err = New(Kind(99), Params{})
	require.Error(t, err)
	require.Equal(t, "Kind(99)", Kind(99).String())
}

func TestDefaults(t *testing.T) {
	p := Params{}.withDefaults()
	require.Equal(t, 100_000, p.Trials)
	require.Equal(t, 100, p.Starts)
	require.Equal(t, 1_000, p.Patience)
	require.Equal(t, 100, p.Restarts)
	require.Equal(t, 20, p.MaxPasses)
	require.NotNil(t, p.Now)
}

func TestDegenerateInputs(t *testing.T) {
	people := decodeAll(t, pairedTokens[:1])

	for name, s := range allStrategies(testParams()) {
		t.Run(name, func(t *testing.T) {
			require.Empty(t, s.Run(nil, 3))
			require.Empty(t, s.Run(people, 0))
			require.Empty(t, s.Run(people, -1))

			groups := s.Run(people, 3)
			require.Len(t, groups, 1)
			require.Equal(t, []string{pairedTokens[0]}, groups[0].Members)
		})
	}
}

func TestHugeGroupSizeYieldsOneGroup(t *testing.T) {
	people := decodeAll(t, pairedTokens)

	for _, workers := range []int{1, 4} {
		p := testParams()
		p.Workers = workers
		for name, s := range allStrategies(p) {
			var groups []models.Group
			require.NotPanics(t, func() { groups = s.Run(people, math.MaxInt) }, "%s workers=%d", name, workers)
			require.Len(t, groups, 1, "%s workers=%d", name, workers)
			require.ElementsMatch(t, pairedTokens, groups[0].Members)
		}
	}
}

func TestOverlapStrategiesFindPairs(t *testing.T) {
	people := decodeAll(t, pairedTokens)

	for _, workers := range []int{1, 4} {
		p := testParams()
		p.Workers = workers

		require.Equal(t, pairedGroups, NewHillClimbing(p).Run(people, 2), "hillclimb workers=%d", workers)
		require.Equal(t, pairedGroups, NewRandomSearch(p).Run(people, 2), "random workers=%d", workers)
	}
}

func TestPartitionCompleteness(t *testing.T) {
	people := synthetic.Seeded(23, 3)
	tokens := make(map[string]int)
	for _, p := range people {
		tokens[p.Encode()]++
	}

	for name, s := range allStrategies(testParams()) {
		for _, size := range []int{1, 4, 5, 23, 30, math.MaxInt} {
			groups := s.Run(people, size)

			wantGroups := 1 + (len(people)-1)/size
			require.Len(t, groups, wantGroups, "%s size=%d", name, size)

			seen := make(map[string]int)
			short := 0
			for _, g := range groups {
				for _, m := range g.Members {
					seen[m]++
				}
				require.IsNonDecreasing(t, g.Members)
				if len(g.Members) != size {
					short++
					want := len(people) % size
					require.Equal(t, want, len(g.Members), "%s size=%d", name, size)
				}
				for _, h := range g.SuggestedHours {
					require.True(t, h >= 0 && h < availability.HoursPerWeek)
				}
			}
			require.Equal(t, tokens, seen, "%s size=%d", name, size)
			require.LessOrEqual(t, short, 1)

			for i := 1; i < len(groups); i++ {
				require.Less(t, groups[i-1].Members[0], groups[i].Members[0])
			}
		}
	}
}

func TestSeededRunsAreReproducible(t *testing.T) {
	people := synthetic.Seeded(17, 11)

	for _, kind := range []Kind{KindHillClimbing, KindMinMaxBalance} {
		sequential := testParams()
		sequential.Workers = 1
		parallel := testParams()
		parallel.Workers = 8

		a, err := New(kind, sequential)
		require.NoError(t, err)
		b, err := New(kind, parallel)
		require.NoError(t, err)

		require.Equal(t, a.Run(people, 4), b.Run(people, 4), kind.String())
	}

	p := testParams()
	p.Workers = 3
	require.Equal(t, NewRandomSearch(p).Run(people, 4), NewRandomSearch(p).Run(people, 4))
}

func TestHillClimbingTrace(t *testing.T) {
	people := synthetic.Seeded(20, 5)

	histories := make(map[int][]float64)
	p := testParams()
	p.Trace = func(start int, scores []float64) {
		histories[start] = scores
	}
	NewHillClimbing(p).Run(people, 4)

	require.Len(t, histories, p.Starts)
	for start, h := range histories {
		require.NotEmpty(t, h, "start %d", start)
		for i := 1; i < len(h); i++ {
			require.Greater(t, h[i], h[i-1], "start %d", start)
		}
	}
}

func TestMinMaxTraceIsMonotonic(t *testing.T) {
	people := synthetic.Seeded(24, 9)

	histories := make(map[int][]float64)
	p := testParams()
	p.Trace = func(restart int, scores []float64) {
		histories[restart] = scores
	}
	NewMinMaxBalance(p).Run(people, 4)

	require.Len(t, histories, p.Restarts)
	for restart, h := range histories {
		require.NotEmpty(t, h)
		require.IsNonDecreasing(t, h, "restart %d", restart)
		for _, s := range h {
			require.GreaterOrEqual(t, s, 0.0)
			require.LessOrEqual(t, s, 1.0)
		}
	}
}

func TestMinMaxSeparatesIncompatibleTeams(t *testing.T) {
	mk := func(name string, from, to int) models.Person {
		p, err := models.NewPerson(name, "UTC", hours(from, to))
		require.NoError(t, err)
		return p
	}
	people := []models.Person{
		mk("A1", 0, 40), mk("B1", 100, 140),
		mk("A2", 0, 40), mk("B2", 100, 140),
	}

	groups := NewMinMaxBalance(testParams()).Run(people, 2)
	require.Len(t, groups, 2)

	byMember := make(map[string]models.Group)
	for _, g := range groups {
		for _, m := range g.Members {
			byMember[m] = g
		}
	}

	a := byMember[people[0].Encode()]
	require.ElementsMatch(t, []string{people[0].Encode(), people[2].Encode()}, a.Members)
	require.Equal(t, 0, a.SuggestedHours[0])
	require.Len(t, a.SuggestedHours, 40)

	b := byMember[people[1].Encode()]
	require.ElementsMatch(t, []string{people[1].Encode(), people[3].Encode()}, b.Members)
	require.Equal(t, 100, b.SuggestedHours[0])
	require.Len(t, b.SuggestedHours, 40)
}

func TestMinMaxHandlesShortLastTeam(t *testing.T) {
	tokens := []string{
		"TG91aXMgQ2hpbHVtYmF8QWZyaWNhL0pvaGFubmVzYnVyZ3wwfDB8MjAxMzI2NjA0MHwwfDB8MA==",
		"SXbDoW4gTWF4aW1pbGlhbm8gTW9udGUgfEFtZXJpY2EvQnVlbm9zX0FpcmVzfDc4NjQzMjB8MzA3MjB8MjAxMzI2NjA0MHwyMTU1MzQ3OTY4fDd8MA==",
		"VmxhZGlzbG92YXMgS2FyYWxpdXN8RXVyb3BlL1ZpbG5pdXN8Nzg2NDMyMHwzMDcyMHwyMDEzMjY2MDQwfDc4NjQzMjB8MzI3NjB8MA==",
		"QW1hbmRhIENvbGV8QW1lcmljYS9EZW52ZXJ8MHwxMjU4NTk4NDB8MjAxMzc1NzU2MHwwfDB8MA==",
		"THkgRGFuZ3xBbWVyaWNhL0RlbnZlcnw0OTE1MjB8MjE0NzQ4NTU2OHw3fDB8MHww",
		"VmlvbGEgRm9uZ3xBbWVyaWNhL0xvc19BbmdlbGVzfDIxNDgwMDU4ODh8MjI3MzMxNDY5NXwxMjd8ODM4ODQ4MHwwfDA=",
		"RW1tYW51ZWwgREsgRG9sb3xBZnJpY2EvQWNjcmF8Nzg2NDMyMHwzMDcyMHwyMDEzMjY2MDQwfDc4NjQzMjB8MzA3MjB8MA==",
		"TW9uaXF1ZSBSb2JlcnRzfEFtZXJpY2EvRGVudmVyfDc4NjQzMjB8MzA3MjB8MTI1ODI5MTIwfDB8MHww",
		"U3RldmVuIEZvc3RlcnxBbWVyaWNhL0RlbnZlcnwwfDMwNzIwfDIwMTMyNjYwNDB8MHwwfDA=",
	}
	people := decodeAll(t, tokens)

	groups := NewMinMaxBalance(testParams()).Run(people, 5)
	require.Len(t, groups, 2)
	require.ElementsMatch(t, []int{5, 4}, []int{len(groups[0].Members), len(groups[1].Members)})
}
