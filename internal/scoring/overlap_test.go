package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/tzgroups/internal/availability"
)

func week(free ...int) availability.Week {
	var w availability.Week
	for _, h := range free {
		w.Set(h, true)
	}
	return w
}

func span(from, to int) []int {
	var hours []int
	for h := from; h < to; h++ {
		hours = append(hours, h)
	}
	return hours
}

func allHours() []int {
	return span(0, availability.HoursPerWeek)
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name      string
		weeks     []availability.Week
		wantScore int
		wantHours []int
	}{
		{
			name:      "empty group",
			weeks:     nil,
			wantScore: 0,
		},
		{
			name:      "nobody ever free",
			weeks:     []availability.Week{week(), week()},
			wantScore: 0,
			wantHours: allHours(),
		},
		{
			name:      "no full attendance scores the best partial count",
			weeks:     []availability.Week{week(1, 2), week(2, 3), week(50)},
			wantScore: 2,
			wantHours: []int{2},
		},
		{
			name:      "short full run counts as one hour",
			weeks:     []availability.Week{week(7, 8, 9), week(7, 8, 9)},
			wantScore: 2,
			wantHours: []int{7, 8, 9},
		},
		{
			name:      "run of exactly four",
			weeks:     []availability.Week{week(7, 8, 9, 10), week(7, 8, 9, 10)},
			wantScore: 8,
			wantHours: []int{7, 8, 9, 10},
		},
		{
			name:      "long run is capped at four",
			weeks:     []availability.Week{week(span(20, 40)...), week(span(20, 40)...), week(span(20, 40)...)},
			wantScore: 12,
			wantHours: span(20, 40),
		},
		{
			name:      "longest of several runs decides",
			weeks:     []availability.Week{week(1, 2, 10, 11, 12, 13, 14), week(1, 2, 10, 11, 12, 13, 14)},
			wantScore: 8,
			wantHours: []int{1, 2, 10, 11, 12, 13, 14},
		},
		{
			name:      "run wraps across the week boundary",
			weeks:     []availability.Week{week(166, 167, 0, 1), week(166, 167, 0, 1)},
			wantScore: 8,
			wantHours: []int{0, 1, 166, 167},
		},
		{
			name:      "single member",
			weeks:     []availability.Week{week(span(100, 110)...)},
			wantScore: 4,
			wantHours: span(100, 110),
		},
		{
			name:      "always free",
			weeks:     []availability.Week{week(allHours()...), week(allHours()...)},
			wantScore: 8,
			wantHours: allHours(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlap(tt.weeks)
			require.Equal(t, tt.wantScore, got.Score)
			require.Equal(t, tt.wantHours, got.Hours)
		})
	}
}

func TestOverlapTotal(t *testing.T) {
	groups := [][]availability.Week{
		{week(7, 8, 9, 10), week(7, 8, 9, 10)},
		{week(11), week(12)},
		{week(span(30, 40)...)},
	}

	total, scores := OverlapTotal(groups)
	require.Equal(t, 8+1+4, total)
	require.Len(t, scores, 3)
	require.Equal(t, []int{11, 12}, scores[1].Hours)
}

func TestLongestRun(t *testing.T) {
	var c Counts
	require.Equal(t, availability.HoursPerWeek, c.LongestRun(0))
	require.Equal(t, 0, c.LongestRun(1))

	for _, h := range []int{165, 166, 167, 0, 1, 50, 51} {
		c[h] = 2
	}
	require.Equal(t, 5, c.LongestRun(2))
	require.Equal(t, 2, c.Max())
	require.Equal(t, []int{0, 1, 50, 51, 165, 166, 167}, c.HoursWith(2))
}

func TestCoverage(t *testing.T) {
	weeks := []availability.Week{week(5), week(5, 6), week(6), week()}

	require.InDelta(t, 0.5, Coverage(weeks, 5), 1e-9)
	require.InDelta(t, 0.5, Coverage(weeks, 6), 1e-9)
	require.InDelta(t, 0.0, Coverage(weeks, 7), 1e-9)
	require.InDelta(t, 0.0, Coverage(nil, 5), 1e-9)
	require.InDelta(t, 0.0, Coverage(weeks, availability.HoursPerWeek), 1e-9)
}

func TestOverlapScoreMatchesOverlap(t *testing.T) {
	groups := [][]availability.Week{
		nil,
		{week(1, 2), week(2, 3), week(50)},
		{week(166, 167, 0, 1), week(166, 167, 0, 1)},
		{week(allHours()...)},
		{week(7, 8, 9), week(7, 8, 9)},
	}
	for _, g := range groups {
		require.Equal(t, Overlap(g).Score, OverlapScore(g))
	}
}
