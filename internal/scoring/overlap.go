// Package scoring evaluates how well a set of UTC-normalized weekly schedules
// fit together. All functions are pure.
package scoring

import (
	"math/bits"

	"github.com/mmynk/tzgroups/internal/availability"
)

// MaxRewardedRun caps how many consecutive fully-attended hours count toward
// an overlap score. Shorter runs are scored as a single hour.
const MaxRewardedRun = 4

// Counts holds, for each UTC week-hour, how many members are free.
type Counts [availability.HoursPerWeek]int

// HourCounts tallies free members per hour.
func HourCounts(weeks []availability.Week) Counts {
	var counts Counts
	for _, w := range weeks {
		for i, word := range w {
			for word != 0 {
				counts[i*availability.WordBits+bits.TrailingZeros32(word)]++
				word &= word - 1
			}
		}
	}
	return counts
}

// Max returns the highest count in the week.
func (c *Counts) Max() int {
	best := 0
	for _, n := range c {
		if n > best {
			best = n
		}
	}
	return best
}

// HoursWith lists the hours whose count equals n, ascending.
func (c *Counts) HoursWith(n int) []int {
	var hours []int
	for h, count := range c {
		if count == n {
			hours = append(hours, h)
		}
	}
	return hours
}

// LongestRun returns the length of the longest stretch of consecutive hours
// whose count equals n. The week is circular, so a run may cross from Sunday
// 23:00 into Monday 00:00.
func (c *Counts) LongestRun(n int) int {
	start := -1
	for h, count := range c {
		if count != n {
			start = h
			break
		}
	}
	if start < 0 {
		return availability.HoursPerWeek
	}

	// Scanning from just after a miss means no run is split by the wrap.
	longest, run := 0, 0
	for i := 1; i <= availability.HoursPerWeek; i++ {
		h := (start + i) % availability.HoursPerWeek
		if c[h] == n {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// GroupScore is the overlap-consecutive evaluation of one group.
type GroupScore struct {
	Score int
	// Hours are the UTC hours at which the most members are free.
	Hours []int
}

// Overlap scores one group by attendance and contiguity.
//
// Let M be the most members free at any single hour. When nobody-missing
// hours exist (M equals the group size), the score is M times the longest run
// of such hours, where runs shorter than MaxRewardedRun count as 1 and longer
// ones are capped at MaxRewardedRun. Otherwise the score is M. Either way the
// suggested hours are every hour reaching M.
func Overlap(weeks []availability.Week) GroupScore {
	if len(weeks) == 0 {
		return GroupScore{}
	}

	counts := HourCounts(weeks)
	best := counts.Max()
	return GroupScore{
		Score: overlapScore(&counts, best, len(weeks)),
		Hours: counts.HoursWith(best),
	}
}

// OverlapScore is Overlap without the suggested hours, for hot loops.
func OverlapScore(weeks []availability.Week) int {
	if len(weeks) == 0 {
		return 0
	}
	counts := HourCounts(weeks)
	return overlapScore(&counts, counts.Max(), len(weeks))
}

func overlapScore(counts *Counts, best, size int) int {
	if best < size {
		return best
	}
	run := min(counts.LongestRun(best), MaxRewardedRun)
	if run < MaxRewardedRun {
		run = 1
	}
	return run * best
}

// OverlapTotal scores a whole partition: the sum of Overlap over its groups.
// The per-group results are returned in partition order.
func OverlapTotal(groups [][]availability.Week) (int, []GroupScore) {
	total := 0
	scores := make([]GroupScore, len(groups))
	for i, g := range groups {
		scores[i] = Overlap(g)
		total += scores[i].Score
	}
	return total, scores
}

// Coverage returns the fraction of members free at the given UTC hour.
func Coverage(weeks []availability.Week, hour int) float64 {
	if len(weeks) == 0 || hour < 0 || hour >= availability.HoursPerWeek {
		return 0
	}
	free := 0
	for _, w := range weeks {
		if w.Has(hour) {
			free++
		}
	}
	return float64(free) / float64(len(weeks))
}
