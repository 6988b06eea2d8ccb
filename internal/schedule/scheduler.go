package schedule

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/courtside/fixtures/internal/config"
	"github.com/courtside/fixtures/internal/fixture"
)

// ScheduledMatch is a fixture bound to a slot.
type ScheduledMatch struct {
	Slot     Slot
	Division string
	Home     string
	Away     string
}

// LogEntry is one step of the run's audit trail. Entries are appended in
// order and never filtered; the full trail is returned even on failure.
type LogEntry struct {
	Step   string
	Status string
	Detail string
}

const (
	StatusOK      = "ok"
	StatusWarning = "warning"
	StatusError   = "error"
)

// Result is the complete outcome of one scheduling run.
type Result struct {
	Matches      []ScheduledMatch
	Leftover     []fixture.Fixture
	Log          []LogEntry
	TeamCalendar []CalendarRow
	Balance      []BalanceRow
	Completeness []DivisionCompleteness
}

// Schedule runs the full pipeline: play dates, slot grid, round-robin
// fixtures, greedy assignment, repair, reports. It is a pure function of
// the config (including its seed) and the unavailability list; each call
// owns its working state end to end. On a ConfigError the returned Result
// carries only the log.
func Schedule(cfg *config.Config, unavail []config.Unavailability) (*Result, error) {
	s := newState(cfg, unavail)

	s.logf("Load Configuration", StatusOK, "%d divisions, %d teams, %d courts, %d time slots",
		len(cfg.Divisions), len(cfg.AllTeams()), len(cfg.Courts), len(cfg.TimeSlots))
	s.logf("Load Unavailability", StatusOK, "%d records for %d teams",
		len(unavail), countUnavailableTeams(unavail))

	dates, err := PlayDates(cfg)
	if err != nil {
		s.logf("Generate Play Dates", StatusError, "%v", err)
		return &Result{Log: s.log}, err
	}
	if len(dates) == 0 {
		err := configErrorf("no valid play dates between %s and %s",
			cfg.Season.StartDate.Time.Format("2006-01-02"),
			cfg.Season.EndDate.Time.Format("2006-01-02"))
		s.logf("Generate Play Dates", StatusError, "%v", err)
		return &Result{Log: s.log}, err
	}
	s.playDates = dates
	s.logf("Generate Play Dates", StatusOK, "%d valid play dates", len(dates))

	s.slots = BuildSlotGrid(dates, cfg)
	s.logf("Build Slot Grid", StatusOK, "%d total slots", len(s.slots))

	rng := rand.New(rand.NewSource(cfg.Seed))
	set := fixture.RoundRobin(cfg.Divisions, rng)
	for _, name := range set.Skipped {
		s.logf("Generate Fixtures", StatusWarning, "skipping division %s: fewer than two teams", name)
	}
	for _, div := range cfg.Divisions {
		if n := set.Required[div.Name]; n > 0 {
			s.logf("Generate Fixtures", StatusOK, "%d fixtures for division %s", n, div.Name)
		}
	}
	s.logf("Generate Fixtures", StatusOK, "%d total fixtures to schedule (seed %d)",
		len(set.Fixtures), cfg.Seed)

	s.greedy(set.Fixtures)
	s.repair()

	if len(s.leftover) > 0 {
		s.logf("Schedule", StatusWarning, "%d of %d fixtures could not be scheduled",
			len(s.leftover), len(set.Fixtures))
	} else {
		s.logf("Schedule", StatusOK, "all %d fixtures scheduled", len(s.matches))
	}

	s.sortMatches()

	return &Result{
		Matches:      s.matches,
		Leftover:     s.leftover,
		Log:          s.log,
		TeamCalendar: buildTeamCalendar(s.matches),
		Balance:      buildBalance(cfg, s.matches),
		Completeness: buildCompleteness(cfg, set.Required, s.matches),
	}, nil
}

type slotKey struct {
	date  time.Time
	time  string
	court string
}

type teamDate struct {
	team string
	date time.Time
}

type pairKey struct {
	division string
	a, b     string
}

type divDate struct {
	division string
	date     time.Time
}

func normalizePair(division, a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{division, a, b}
}

// state is the mutable working set for a single run: remaining fixtures,
// occupied slots, scheduled pairings, and per-date team commitments. It is
// owned by one Schedule call and never shared.
type state struct {
	cfg *config.Config

	playDates []time.Time
	slots     []Slot

	unavailable map[teamDate]bool

	matches   []ScheduledMatch
	usedSlots map[slotKey]bool
	teamDays  map[teamDate]bool
	pairings  map[pairKey]bool
	divDays   map[divDate]int

	remaining []fixture.Fixture
	leftover  []fixture.Fixture

	log []LogEntry
}

func newState(cfg *config.Config, unavail []config.Unavailability) *state {
	s := &state{
		cfg:         cfg,
		unavailable: make(map[teamDate]bool),
		usedSlots:   make(map[slotKey]bool),
		teamDays:    make(map[teamDate]bool),
		pairings:    make(map[pairKey]bool),
		divDays:     make(map[divDate]int),
	}
	for _, u := range unavail {
		s.unavailable[teamDate{u.Team, u.Date.Time}] = true
	}
	return s
}

func (s *state) logf(step, status, format string, args ...any) {
	s.log = append(s.log, LogEntry{Step: step, Status: status, Detail: fmt.Sprintf(format, args...)})
}

// greedy walks the slot grid in order and places the first compatible
// fixture into each slot. Slots are never revisited within this pass.
func (s *state) greedy(fixtures []fixture.Fixture) {
	s.remaining = append([]fixture.Fixture(nil), fixtures...)
	if s.cfg.Goals.ScarcityPriority {
		s.sortByScarcity()
	}

	for _, slot := range s.slots {
		if len(s.remaining) == 0 {
			break
		}
		idx := s.pickCandidate(slot)
		if idx < 0 {
			s.logf("Greedy Assignment", StatusWarning, "no compatible fixture for %s %s %s",
				slot.Date.Format("2006-01-02"), slot.Time, slot.Court)
			continue
		}
		s.bind(s.remaining[idx], slot)
		s.remaining = append(s.remaining[:idx], s.remaining[idx+1:]...)
	}

	s.logf("Greedy Assignment", StatusOK, "%d matches scheduled, %d remaining",
		len(s.matches), len(s.remaining))
}

// sortByScarcity front-loads fixtures whose teams have the fewest safe play
// dates so constrained teams are not starved late in the run. Availability
// counts ignore assignments, so one ordering pass before the grid walk is
// enough.
func (s *state) sortByScarcity() {
	avail := make(map[string]int)
	for _, div := range s.cfg.Divisions {
		for _, team := range div.Teams {
			n := 0
			for _, d := range s.playDates {
				if !s.unavailable[teamDate{team, d}] {
					n++
				}
			}
			avail[team] = n
		}
	}
	sort.SliceStable(s.remaining, func(i, j int) bool {
		fi, fj := s.remaining[i], s.remaining[j]
		return avail[fi.Home]+avail[fi.Away] < avail[fj.Home]+avail[fj.Away]
	})
}

// pickCandidate returns the index of the first remaining fixture that can
// occupy the slot. When a per-division daily cap is configured, candidates
// whose division is still under the cap on the slot's date are preferred,
// but the cap alone never leaves a slot empty.
func (s *state) pickCandidate(slot Slot) int {
	overCap := -1
	maxPerDay := s.cfg.Goals.MaxDivisionMatchesPerDay
	for i, f := range s.remaining {
		if !s.fits(f, slot.Date) {
			continue
		}
		if maxPerDay > 0 && s.divDays[divDate{f.Division, slot.Date}] >= maxPerDay {
			if overCap < 0 {
				overCap = i
			}
			continue
		}
		return i
	}
	return overCap
}

// fits reports whether the fixture may be played on the date: neither team
// already committed that day, neither team unavailable, and the pairing not
// already scheduled in its division.
func (s *state) fits(f fixture.Fixture, date time.Time) bool {
	if s.teamDays[teamDate{f.Home, date}] || s.teamDays[teamDate{f.Away, date}] {
		return false
	}
	if s.unavailable[teamDate{f.Home, date}] || s.unavailable[teamDate{f.Away, date}] {
		return false
	}
	return !s.pairings[normalizePair(f.Division, f.Home, f.Away)]
}

func (s *state) bind(f fixture.Fixture, slot Slot) {
	s.matches = append(s.matches, ScheduledMatch{
		Slot:     slot,
		Division: f.Division,
		Home:     f.Home,
		Away:     f.Away,
	})
	s.usedSlots[slotKey{slot.Date, slot.Time, slot.Court}] = true
	s.teamDays[teamDate{f.Home, slot.Date}] = true
	s.teamDays[teamDate{f.Away, slot.Date}] = true
	s.pairings[normalizePair(f.Division, f.Home, f.Away)] = true
	s.divDays[divDate{f.Division, slot.Date}]++
}

// unbind removes the match at idx and releases everything it held.
func (s *state) unbind(idx int) ScheduledMatch {
	m := s.matches[idx]
	s.matches = append(s.matches[:idx], s.matches[idx+1:]...)
	delete(s.usedSlots, slotKey{m.Slot.Date, m.Slot.Time, m.Slot.Court})
	delete(s.teamDays, teamDate{m.Home, m.Slot.Date})
	delete(s.teamDays, teamDate{m.Away, m.Slot.Date})
	delete(s.pairings, normalizePair(m.Division, m.Home, m.Away))
	s.divDays[divDate{m.Division, m.Slot.Date}]--
	return m
}

// sortMatches orders the final match list in slot-grid order so identical
// inputs produce identical output ordering regardless of repair activity.
func (s *state) sortMatches() {
	courtIdx := catalogueIndex(s.cfg.Courts)
	timeIdx := catalogueIndex(s.cfg.TimeSlots)
	sort.SliceStable(s.matches, func(i, j int) bool {
		a, b := s.matches[i].Slot, s.matches[j].Slot
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Court != b.Court {
			return courtIdx[a.Court] < courtIdx[b.Court]
		}
		return timeIdx[a.Time] < timeIdx[b.Time]
	})
}

func catalogueIndex(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}

func countUnavailableTeams(unavail []config.Unavailability) int {
	seen := make(map[string]bool)
	for _, u := range unavail {
		seen[u.Team] = true
	}
	return len(seen)
}
