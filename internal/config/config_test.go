package config

import (
	"testing"
	"time"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

const testConfigYAML = `
season:
  start_date: "2026-01-10"
  end_date: "2026-03-28"
  play_days: [Saturday, Sunday]
  blackout_dates:
    - date: "2026-02-14"
      reason: "Regional carnival"
    - date: "2026-03-07"
      reason: "Venue closed"

divisions:
  - name: Division 1
    teams: [Falcons, Hornets, Comets, Swifts, Thunder]
  - name: Division 2
    teams: [Magpies, Vixens, Fever, Lightning]

courts: [Court 1, Court 2]

time_slots: ["09:00", "10:30", "12:00"]

seed: 7

goals:
  scarcity_priority: true
  max_division_matches_per_day: 3

unavailability:
  - team: Falcons
    date: "2026-01-17"
  - team: Vixens
    date: "2026-02-21"
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("season dates", func(t *testing.T) {
		if cfg.Season.StartDate.Time != mustDate("2026-01-10") {
			t.Errorf("start date = %v, want 2026-01-10", cfg.Season.StartDate.Time)
		}
		if cfg.Season.EndDate.Time != mustDate("2026-03-28") {
			t.Errorf("end date = %v, want 2026-03-28", cfg.Season.EndDate.Time)
		}
	})

	t.Run("play days", func(t *testing.T) {
		days := cfg.PlayWeekdays()
		if len(days) != 2 {
			t.Fatalf("play weekdays = %d, want 2", len(days))
		}
		if !days[time.Saturday] || !days[time.Sunday] {
			t.Errorf("play weekdays = %v, want Saturday and Sunday", days)
		}
	})

	t.Run("blackout dates", func(t *testing.T) {
		if len(cfg.Season.BlackoutDates) != 2 {
			t.Fatalf("blackout dates = %d, want 2", len(cfg.Season.BlackoutDates))
		}
		if cfg.Season.BlackoutDates[0].Date.Time != mustDate("2026-02-14") {
			t.Errorf("first blackout = %v, want 2026-02-14", cfg.Season.BlackoutDates[0].Date.Time)
		}
		if cfg.Season.BlackoutDates[0].Reason != "Regional carnival" {
			t.Errorf("first blackout reason = %q", cfg.Season.BlackoutDates[0].Reason)
		}
	})

	t.Run("divisions and teams", func(t *testing.T) {
		if len(cfg.Divisions) != 2 {
			t.Fatalf("divisions = %d, want 2", len(cfg.Divisions))
		}
		if cfg.Divisions[0].Name != "Division 1" {
			t.Errorf("first division = %q", cfg.Divisions[0].Name)
		}
		if len(cfg.AllTeams()) != 9 {
			t.Errorf("teams = %d, want 9", len(cfg.AllTeams()))
		}
	})

	t.Run("courts and time slots", func(t *testing.T) {
		if len(cfg.Courts) != 2 {
			t.Errorf("courts = %d, want 2", len(cfg.Courts))
		}
		if len(cfg.TimeSlots) != 3 {
			t.Errorf("time slots = %d, want 3", len(cfg.TimeSlots))
		}
	})

	t.Run("seed and goals", func(t *testing.T) {
		if cfg.Seed != 7 {
			t.Errorf("seed = %d, want 7", cfg.Seed)
		}
		if !cfg.Goals.ScarcityPriority {
			t.Error("scarcity_priority not set")
		}
		if cfg.Goals.MaxDivisionMatchesPerDay != 3 {
			t.Errorf("max_division_matches_per_day = %d, want 3", cfg.Goals.MaxDivisionMatchesPerDay)
		}
	})

	t.Run("unavailability", func(t *testing.T) {
		if len(cfg.Unavailability) != 2 {
			t.Fatalf("unavailability records = %d, want 2", len(cfg.Unavailability))
		}
		if cfg.Unavailability[0].Team != "Falcons" {
			t.Errorf("first record team = %q", cfg.Unavailability[0].Team)
		}
		if cfg.Unavailability[0].Date.Time != mustDate("2026-01-17") {
			t.Errorf("first record date = %v", cfg.Unavailability[0].Date.Time)
		}
	})
}

func TestDefaultSeed(t *testing.T) {
	yaml := `
season:
  start_date: "2026-01-10"
  end_date: "2026-01-31"
  play_days: [Saturday]
divisions:
  - name: Division 1
    teams: [Falcons, Hornets]
courts: [Court 1]
time_slots: ["09:00"]
`
	cfg, err := LoadFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Seed != DefaultSeed {
		t.Errorf("seed = %d, want default %d", cfg.Seed, DefaultSeed)
	}
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{
			name: "start date after end date",
			yaml: `
season:
  start_date: "2026-03-28"
  end_date: "2026-01-10"
  play_days: [Saturday]
divisions:
  - name: Division 1
    teams: [Falcons, Hornets]
courts: [Court 1]
time_slots: ["09:00"]
`,
		},
		{
			name: "no play days",
			yaml: `
season:
  start_date: "2026-01-10"
  end_date: "2026-03-28"
  play_days: []
divisions:
  - name: Division 1
    teams: [Falcons, Hornets]
courts: [Court 1]
time_slots: ["09:00"]
`,
		},
		{
			name: "invalid play day name",
			yaml: `
season:
  start_date: "2026-01-10"
  end_date: "2026-03-28"
  play_days: [Caturday]
divisions:
  - name: Division 1
    teams: [Falcons, Hornets]
courts: [Court 1]
time_slots: ["09:00"]
`,
		},
		{
			name: "no courts",
			yaml: `
season:
  start_date: "2026-01-10"
  end_date: "2026-03-28"
  play_days: [Saturday]
divisions:
  - name: Division 1
    teams: [Falcons, Hornets]
courts: []
time_slots: ["09:00"]
`,
		},
		{
			name: "duplicate court",
			yaml: `
season:
  start_date: "2026-01-10"
  end_date: "2026-03-28"
  play_days: [Saturday]
divisions:
  - name: Division 1
    teams: [Falcons, Hornets]
courts: [Court 1, Court 1]
time_slots: ["09:00"]
`,
		},
		{
			name: "duplicate time slot",
			yaml: `
season:
  start_date: "2026-01-10"
  end_date: "2026-03-28"
  play_days: [Saturday]
divisions:
  - name: Division 1
    teams: [Falcons, Hornets]
courts: [Court 1]
time_slots: ["09:00", "09:00"]
`,
		},
		{
			name: "team in two divisions",
			yaml: `
season:
  start_date: "2026-01-10"
  end_date: "2026-03-28"
  play_days: [Saturday]
divisions:
  - name: Division 1
    teams: [Falcons, Hornets]
  - name: Division 2
    teams: [Falcons, Vixens]
courts: [Court 1]
time_slots: ["09:00"]
`,
		},
		{
			name: "unavailability record without a team",
			yaml: `
season:
  start_date: "2026-01-10"
  end_date: "2026-03-28"
  play_days: [Saturday]
divisions:
  - name: Division 1
    teams: [Falcons, Hornets]
courts: [Court 1]
time_slots: ["09:00"]
unavailability:
  - date: "2026-01-17"
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadFromBytes([]byte(tc.yaml)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestSingleDaySeason(t *testing.T) {
	yaml := `
season:
  start_date: "2026-01-10"
  end_date: "2026-01-10"
  play_days: [Saturday]
divisions:
  - name: Division 1
    teams: [Falcons, Hornets]
courts: [Court 1]
time_slots: ["09:00"]
`
	if _, err := LoadFromBytes([]byte(yaml)); err != nil {
		t.Errorf("one-day season should be valid, got: %v", err)
	}
}
