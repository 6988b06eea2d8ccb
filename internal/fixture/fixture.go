package fixture

import (
	"math/rand"

	"github.com/courtside/fixtures/internal/config"
)

// Fixture is a single round-robin pairing within a division. The home and
// away roles are fixed at generation time and never change afterwards.
type Fixture struct {
	Division string
	Home     string
	Away     string
}

// Set is the full fixture list for a season plus per-division bookkeeping.
type Set struct {
	Fixtures []Fixture
	Required map[string]int // division -> expected fixture count
	Skipped  []string       // divisions with fewer than two teams
}

// RoundRobin generates one fixture per unordered team pair in each division:
// n(n-1)/2 fixtures for n teams. Pair order within a division is shuffled
// with rng so candidate ordering in the scheduler is fair but reproducible
// from the recorded seed. Divisions with fewer than two teams produce no
// fixtures and are reported in Skipped.
func RoundRobin(divisions []config.Division, rng *rand.Rand) *Set {
	set := &Set{Required: make(map[string]int)}

	for _, div := range divisions {
		if len(div.Teams) < 2 {
			set.Required[div.Name] = 0
			set.Skipped = append(set.Skipped, div.Name)
			continue
		}

		var pairs []Fixture
		for i := 0; i < len(div.Teams); i++ {
			for j := i + 1; j < len(div.Teams); j++ {
				pairs = append(pairs, Fixture{
					Division: div.Name,
					Home:     div.Teams[i],
					Away:     div.Teams[j],
				})
			}
		}

		rng.Shuffle(len(pairs), func(i, j int) {
			pairs[i], pairs[j] = pairs[j], pairs[i]
		})
		for i := range pairs {
			if rng.Intn(2) == 1 {
				pairs[i].Home, pairs[i].Away = pairs[i].Away, pairs[i].Home
			}
		}

		set.Fixtures = append(set.Fixtures, pairs...)
		set.Required[div.Name] = len(pairs)
	}

	return set
}
