package validator

import (
	"fmt"
	"time"

	"github.com/courtside/fixtures/internal/config"
	"github.com/xuri/excelize/v2"
)

// Violation represents a scheduling invariant broken by an exported
// workbook. Type is "error" for hard invariants and "warning" for
// completeness shortfalls, which are legitimate in partial schedules.
type Violation struct {
	Row     int
	Type    string
	Message string
}

// Validate reads an exported schedule workbook and checks it against the
// league configuration and unavailability records. It exists so manually
// edited workbooks can be re-checked before publishing.
func Validate(cfg *config.Config, unavail []config.Unavailability, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	matches, err := readMatches(f)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}

	var violations []Violation
	violations = append(violations, checkSlotUniqueness(matches)...)
	violations = append(violations, checkOneMatchPerDay(matches)...)
	violations = append(violations, checkUnavailability(unavail, matches)...)
	violations = append(violations, checkPairings(matches)...)
	violations = append(violations, checkTeamDivisions(cfg, matches)...)
	violations = append(violations, checkCompleteness(cfg, matches)...)
	return violations, nil
}

type parsedMatch struct {
	Row      int
	Date     time.Time
	Time     string
	Court    string
	Division string
	Home     string
	Away     string
}

func readMatches(f *excelize.File) ([]parsedMatch, error) {
	rows, err := f.GetRows("Fixture Schedule")
	if err != nil {
		return nil, fmt.Errorf("reading Fixture Schedule: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Fixture Schedule is empty")
	}

	// Columns: Date, Day, Time, Court, Division, Home Team, Away Team
	var matches []parsedMatch
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 7 || row[0] == "" {
			continue
		}
		date, err := time.Parse("01/02/2006", row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q", i+1, row[0])
		}
		matches = append(matches, parsedMatch{
			Row:      i + 1,
			Date:     date,
			Time:     row[2],
			Court:    row[3],
			Division: row[4],
			Home:     row[5],
			Away:     row[6],
		})
	}
	return matches, nil
}

func checkSlotUniqueness(matches []parsedMatch) []Violation {
	type slotKey struct {
		date  time.Time
		time  string
		court string
	}
	seen := make(map[slotKey]int)
	var violations []Violation
	for _, m := range matches {
		sk := slotKey{m.Date, m.Time, m.Court}
		if first, ok := seen[sk]; ok {
			violations = append(violations, Violation{
				Row:  m.Row,
				Type: "error",
				Message: fmt.Sprintf("two matches at %s %s %s (rows %d and %d)",
					m.Date.Format("01/02"), m.Time, m.Court, first, m.Row),
			})
			continue
		}
		seen[sk] = m.Row
	}
	return violations
}

func checkOneMatchPerDay(matches []parsedMatch) []Violation {
	type teamDay struct {
		team string
		date time.Time
	}
	counts := make(map[teamDay][]int)
	for _, m := range matches {
		counts[teamDay{m.Home, m.Date}] = append(counts[teamDay{m.Home, m.Date}], m.Row)
		counts[teamDay{m.Away, m.Date}] = append(counts[teamDay{m.Away, m.Date}], m.Row)
	}

	var violations []Violation
	for td, rows := range counts {
		if len(rows) > 1 {
			violations = append(violations, Violation{
				Row:  rows[1],
				Type: "error",
				Message: fmt.Sprintf("%s plays %d matches on %s",
					td.team, len(rows), td.date.Format("01/02")),
			})
		}
	}
	return violations
}

func checkUnavailability(unavail []config.Unavailability, matches []parsedMatch) []Violation {
	type teamDay struct {
		team string
		date time.Time
	}
	blocked := make(map[teamDay]bool)
	for _, u := range unavail {
		blocked[teamDay{u.Team, u.Date.Time}] = true
	}

	var violations []Violation
	for _, m := range matches {
		for _, team := range []string{m.Home, m.Away} {
			if blocked[teamDay{team, m.Date}] {
				violations = append(violations, Violation{
					Row:  m.Row,
					Type: "error",
					Message: fmt.Sprintf("%s is scheduled on %s but is unavailable that day",
						team, m.Date.Format("01/02")),
				})
			}
		}
	}
	return violations
}

func checkPairings(matches []parsedMatch) []Violation {
	type pairKey struct {
		division string
		a, b     string
	}
	seen := make(map[pairKey]int)
	var violations []Violation
	for _, m := range matches {
		a, b := m.Home, m.Away
		if a > b {
			a, b = b, a
		}
		pk := pairKey{m.Division, a, b}
		if first, ok := seen[pk]; ok {
			violations = append(violations, Violation{
				Row:  m.Row,
				Type: "error",
				Message: fmt.Sprintf("%s vs %s appears twice in %s (rows %d and %d)",
					a, b, m.Division, first, m.Row),
			})
			continue
		}
		seen[pk] = m.Row
	}
	return violations
}

func checkTeamDivisions(cfg *config.Config, matches []parsedMatch) []Violation {
	teamDiv := make(map[string]string)
	for _, div := range cfg.Divisions {
		for _, team := range div.Teams {
			teamDiv[team] = div.Name
		}
	}

	var violations []Violation
	for _, m := range matches {
		for _, team := range []string{m.Home, m.Away} {
			div, ok := teamDiv[team]
			if !ok {
				violations = append(violations, Violation{
					Row:     m.Row,
					Type:    "error",
					Message: fmt.Sprintf("unknown team %q", team),
				})
				continue
			}
			if div != m.Division {
				violations = append(violations, Violation{
					Row:  m.Row,
					Type: "error",
					Message: fmt.Sprintf("%s belongs to %s but is scheduled in %s",
						team, div, m.Division),
				})
			}
		}
	}
	return violations
}

func checkCompleteness(cfg *config.Config, matches []parsedMatch) []Violation {
	scheduled := make(map[string]int)
	for _, m := range matches {
		scheduled[m.Division]++
	}

	var violations []Violation
	for _, div := range cfg.Divisions {
		required := 0
		if n := len(div.Teams); n >= 2 {
			required = n * (n - 1) / 2
		}
		if scheduled[div.Name] != required {
			violations = append(violations, Violation{
				Type: "warning",
				Message: fmt.Sprintf("division %s has %d of %d fixtures scheduled",
					div.Name, scheduled[div.Name], required),
			})
		}
	}
	return violations
}
