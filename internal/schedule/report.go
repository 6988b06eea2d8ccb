package schedule

import (
	"sort"
	"time"

	"github.com/courtside/fixtures/internal/config"
)

// CalendarRow is one team's view of one scheduled match. Every match yields
// two rows, one per participating team.
type CalendarRow struct {
	Team     string
	Opponent string
	Role     string // "Home" or "Away"
	Division string
	Date     time.Time
	Time     string
	Court    string
}

// BalanceRow counts scheduled matches per division on one date. Every
// configured division has an entry, zero when it has no matches that day.
type BalanceRow struct {
	Date   time.Time
	Counts map[string]int
}

// DivisionCompleteness compares scheduled and required fixture counts for
// one division. A division with no fixtures to schedule is vacuously
// complete.
type DivisionCompleteness struct {
	Division  string
	Scheduled int
	Required  int
	Complete  bool
}

func buildTeamCalendar(matches []ScheduledMatch) []CalendarRow {
	rows := make([]CalendarRow, 0, 2*len(matches))
	for _, m := range matches {
		rows = append(rows,
			CalendarRow{
				Team: m.Home, Opponent: m.Away, Role: "Home",
				Division: m.Division, Date: m.Slot.Date, Time: m.Slot.Time, Court: m.Slot.Court,
			},
			CalendarRow{
				Team: m.Away, Opponent: m.Home, Role: "Away",
				Division: m.Division, Date: m.Slot.Date, Time: m.Slot.Time, Court: m.Slot.Court,
			},
		)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Team != rows[j].Team {
			return rows[i].Team < rows[j].Team
		}
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].Time < rows[j].Time
	})
	return rows
}

func buildBalance(cfg *config.Config, matches []ScheduledMatch) []BalanceRow {
	counts := make(map[time.Time]map[string]int)
	var dates []time.Time
	for _, m := range matches {
		if counts[m.Slot.Date] == nil {
			counts[m.Slot.Date] = make(map[string]int)
			dates = append(dates, m.Slot.Date)
		}
		counts[m.Slot.Date][m.Division]++
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]BalanceRow, 0, len(dates))
	for _, d := range dates {
		row := BalanceRow{Date: d, Counts: make(map[string]int, len(cfg.Divisions))}
		for _, div := range cfg.Divisions {
			row.Counts[div.Name] = counts[d][div.Name]
		}
		rows = append(rows, row)
	}
	return rows
}

func buildCompleteness(cfg *config.Config, required map[string]int, matches []ScheduledMatch) []DivisionCompleteness {
	scheduled := make(map[string]int)
	for _, m := range matches {
		scheduled[m.Division]++
	}

	rows := make([]DivisionCompleteness, 0, len(cfg.Divisions))
	for _, div := range cfg.Divisions {
		rows = append(rows, DivisionCompleteness{
			Division:  div.Name,
			Scheduled: scheduled[div.Name],
			Required:  required[div.Name],
			Complete:  scheduled[div.Name] == required[div.Name],
		})
	}
	return rows
}
