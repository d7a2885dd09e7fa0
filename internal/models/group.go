package models

// Group is one team proposed by a strategy run.
type Group struct {
	// Members are the encoded tokens of everyone in the group, sorted.
	Members []string

	// SuggestedHours are UTC week-hours (0 = Monday 00:00 UTC) at which the
	// group should meet, ascending. Depending on the strategy not every
	// member is guaranteed to be free at these hours.
	SuggestedHours []int
}
