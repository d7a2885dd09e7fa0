package service

// CreateGroupsRequest asks for a roster to be split into groups.
type CreateGroupsRequest struct {
	Tokens    []string `json:"tokens"`
	GroupSize int      `json:"group_size"`
	// Strategy is hillclimb, random or minmax. Empty uses the server default.
	Strategy string `json:"strategy,omitempty"`
	// Seed replays an earlier run. Zero draws a fresh seed.
	Seed uint64 `json:"seed,omitempty,string"`
}

// Group is one group in a CreateGroupsResponse.
type Group struct {
	Members []string `json:"members"`
	// SuggestedHours are UTC hours of the week, 0 is Monday 00:00.
	SuggestedHours []int `json:"suggested_hours"`
	// Coverage is the fraction of members free at the first suggested hour.
	Coverage float64 `json:"coverage"`
}

type CreateGroupsResponse struct {
	Groups   []Group `json:"groups"`
	Dropped  int     `json:"dropped"`
	Strategy string  `json:"strategy"`
	Seed     uint64  `json:"seed,string"`
	RunID    string  `json:"run_id"`
}

type EncodePersonRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	// Availability is 168 characters of '0' and '1' in the person's zone.
	Availability string `json:"availability"`
}

type EncodePersonResponse struct {
	Token string `json:"token"`
}

type DecodePersonRequest struct {
	Token string `json:"token"`
	// ViewTimezone, when set, adds the availability as seen from that zone.
	ViewTimezone string `json:"view_timezone,omitempty"`
}

type DecodePersonResponse struct {
	Name             string `json:"name"`
	Timezone         string `json:"timezone"`
	Availability     string `json:"availability"`
	ViewAvailability string `json:"view_availability,omitempty"`
}

type ListTimezonesRequest struct{}

type ListTimezonesResponse struct {
	Timezones []string `json:"timezones"`
}
