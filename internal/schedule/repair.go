package schedule

import (
	"github.com/courtside/fixtures/internal/fixture"
)

// repair attempts a single relocation for each fixture the greedy pass left
// unplaced: move one already-scheduled match in the same division to a free
// slot so its original slot can host the stranded fixture. The rebind is
// rolled back unless the displaced match lands somewhere, so the working
// state only ever holds valid schedules. Fixtures that survive this pass
// are permanently unscheduled.
func (s *state) repair() {
	stranded := s.remaining
	s.remaining = nil

	for _, f := range stranded {
		if s.relocate(f) {
			continue
		}
		s.leftover = append(s.leftover, f)
		s.logf("Repair", StatusWarning, "could not schedule %s: %s vs %s",
			f.Division, f.Home, f.Away)
	}
}

// relocate performs the bounded two-hop search for one stranded fixture. It
// deliberately does not cascade further than displacing a single match.
func (s *state) relocate(f fixture.Fixture) bool {
	candidates := make([]ScheduledMatch, len(s.matches))
	copy(candidates, s.matches)

	for _, m := range candidates {
		if m.Division != f.Division {
			continue
		}
		if sharesTeam(m, f) {
			continue
		}
		if !s.fits(f, m.Slot.Date) {
			continue
		}

		idx := s.matchIndex(m)
		if idx < 0 {
			continue
		}
		victim := s.unbind(idx)
		s.bind(f, victim.Slot)

		displaced := fixture.Fixture{Division: victim.Division, Home: victim.Home, Away: victim.Away}
		if slot, ok := s.findFreeSlot(displaced); ok {
			s.bind(displaced, slot)
			s.logf("Repair", StatusOK, "moved %s vs %s to %s %s %s to free a slot for %s vs %s",
				displaced.Home, displaced.Away,
				slot.Date.Format("2006-01-02"), slot.Time, slot.Court,
				f.Home, f.Away)
			return true
		}

		// Roll back: release the stranded fixture and restore the victim.
		s.unbind(len(s.matches) - 1)
		s.bind(displaced, victim.Slot)
	}

	return false
}

// findFreeSlot returns the first unoccupied slot the fixture can legally
// occupy, in grid order.
func (s *state) findFreeSlot(f fixture.Fixture) (Slot, bool) {
	for _, slot := range s.slots {
		if s.usedSlots[slotKey{slot.Date, slot.Time, slot.Court}] {
			continue
		}
		if !s.fits(f, slot.Date) {
			continue
		}
		return slot, true
	}
	return Slot{}, false
}

func (s *state) matchIndex(m ScheduledMatch) int {
	for i, x := range s.matches {
		if x.Slot == m.Slot && x.Home == m.Home && x.Away == m.Away {
			return i
		}
	}
	return -1
}

func sharesTeam(m ScheduledMatch, f fixture.Fixture) bool {
	return m.Home == f.Home || m.Home == f.Away || m.Away == f.Home || m.Away == f.Away
}
