// Package synthetic generates plausible random rosters for demos and tests.
// Nothing in the grouping path depends on it.
package synthetic

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/mmynk/tzgroups/internal/availability"
	"github.com/mmynk/tzgroups/internal/models"
)

var (
	firstNames = []string{
		"Amanda", "Emmanuel", "Iván", "Louis", "Ly", "Monique", "Steven", "Viola",
		"Vladislovas", "Aiko", "Bongani", "Chiara", "Dmitri", "Farah", "Kwame", "Mei",
	}
	lastNames = []string{
		"Cole", "Dolo", "Monte", "Chilumba", "Dang", "Roberts", "Foster", "Fong",
		"Karalius", "Tanaka", "Nkosi", "Ricci", "Volkov", "Haddad", "Mensah", "Lin",
	}
)

// blockHours is the length of the on/off blocks a synthetic day is made of.
const blockHours = 4

// Week returns a random availability string: every day is seven busy hours,
// four blocks of four hours each free or busy at random, then one busy hour.
func Week(rng *rand.Rand) string {
	var sb strings.Builder
	sb.Grow(availability.HoursPerWeek)
	for day := 0; day < availability.DaysPerWeek; day++ {
		sb.WriteString(strings.Repeat("0", 7))
		for block := 0; block < 4; block++ {
			if rng.IntN(2) == 1 {
				sb.WriteString(strings.Repeat("1", blockHours))
			} else {
				sb.WriteString(strings.Repeat("0", blockHours))
			}
		}
		sb.WriteString("0")
	}
	return sb.String()
}

// Roster returns count random people spread over whole-hour zones.
func Roster(count int, rng *rand.Rand) []models.Person {
	zones := availability.WholeHourZones()
	people := make([]models.Person, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("%s %s", firstNames[rng.IntN(len(firstNames))], lastNames[rng.IntN(len(lastNames))])
		zone := zones[rng.IntN(len(zones))]
		p, err := models.NewPerson(name, zone, Week(rng))
		if err != nil {
			// Every input above is valid by construction.
			panic(fmt.Sprintf("synthetic: %v", err))
		}
		people = append(people, p)
	}
	return people
}

// Seeded is Roster with a PCG source built from seed.
func Seeded(count int, seed uint64) []models.Person {
	return Roster(count, rand.New(rand.NewPCG(seed, seed)))
}
