package scoring

import (
	"github.com/mmynk/tzgroups/internal/availability"
)

// SufficientHours is the number of common free hours beyond which more
// overlap does not make a team any more desirable.
const SufficientHours = 40

// TeamScore is the compliance evaluation of one team.
type TeamScore struct {
	// Score is in [0, 1]: 0 means the team never shares a free hour, 1 means
	// it shares at least SufficientHours.
	Score float64
	// Hours are the UTC hours at which every member is free.
	Hours []int
}

// Common returns the hours at which every member is free.
func Common(weeks []availability.Week) availability.Week {
	if len(weeks) == 0 {
		return availability.Week{}
	}
	common := weeks[0]
	for _, w := range weeks[1:] {
		common = common.And(w)
	}
	return common
}

// Compliance scores a team by how many hours all members share, scaled by
// SufficientHours and clamped to 1.
func Compliance(weeks []availability.Week) TeamScore {
	common := Common(weeks)
	return TeamScore{
		Score: ComplianceOf(common),
		Hours: common.Hours(),
	}
}

// ComplianceOf scores an already intersected week.
func ComplianceOf(common availability.Week) float64 {
	return min(float64(common.Count())/SufficientHours, 1.0)
}
