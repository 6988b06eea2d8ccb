package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSeed is used when the config does not set one. The seed is recorded
// in the processing log so any published schedule can be reproduced.
const DefaultSeed = 42

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

type BlackoutDate struct {
	Date   Date   `yaml:"date"`
	Reason string `yaml:"reason"`
}

type Season struct {
	StartDate     Date           `yaml:"start_date"`
	EndDate       Date           `yaml:"end_date"`
	PlayDays      []string       `yaml:"play_days"`
	BlackoutDates []BlackoutDate `yaml:"blackout_dates"`
}

type Division struct {
	Name  string   `yaml:"name"`
	Teams []string `yaml:"teams"`
}

// Goals are soft scheduling preferences. The scheduler favors them when
// choosing between valid candidates but never leaves a slot empty for one.
type Goals struct {
	ScarcityPriority         bool `yaml:"scarcity_priority"`
	MaxDivisionMatchesPerDay int  `yaml:"max_division_matches_per_day"`
}

// Unavailability marks a single date on which a team cannot play.
type Unavailability struct {
	Team string `yaml:"team"`
	Date Date   `yaml:"date"`
}

type Config struct {
	Season         Season           `yaml:"season"`
	Divisions      []Division       `yaml:"divisions"`
	Courts         []string         `yaml:"courts"`
	TimeSlots      []string         `yaml:"time_slots"`
	Seed           int64            `yaml:"seed"`
	Goals          Goals            `yaml:"goals"`
	Unavailability []Unavailability `yaml:"unavailability"`
}

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// PlayWeekdays returns the configured play days as a weekday set. Names are
// checked during validation, so unknown names cannot survive a successful
// load.
func (c *Config) PlayWeekdays() map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(c.Season.PlayDays))
	for _, name := range c.Season.PlayDays {
		if wd, ok := weekdayNames[name]; ok {
			set[wd] = true
		}
	}
	return set
}

// AllTeams returns all team names across all divisions.
func (c *Config) AllTeams() []string {
	var teams []string
	for _, d := range c.Divisions {
		teams = append(teams, d.Teams...)
	}
	return teams
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Config{Seed: DefaultSeed}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if c.Season.StartDate.Time.After(c.Season.EndDate.Time) {
		return fmt.Errorf("start date %s is after end date %s",
			c.Season.StartDate.Time.Format("2006-01-02"),
			c.Season.EndDate.Time.Format("2006-01-02"))
	}

	if len(c.Season.PlayDays) == 0 {
		return fmt.Errorf("at least one play day is required")
	}
	seenDay := make(map[string]bool)
	for _, name := range c.Season.PlayDays {
		if _, ok := weekdayNames[name]; !ok {
			return fmt.Errorf("invalid play day %q", name)
		}
		if seenDay[name] {
			return fmt.Errorf("duplicate play day %q", name)
		}
		seenDay[name] = true
	}

	if len(c.Courts) == 0 {
		return fmt.Errorf("at least one court is required")
	}
	seenCourt := make(map[string]bool)
	for _, court := range c.Courts {
		if court == "" {
			return fmt.Errorf("court names must be non-empty")
		}
		if seenCourt[court] {
			return fmt.Errorf("duplicate court %q", court)
		}
		seenCourt[court] = true
	}

	if len(c.TimeSlots) == 0 {
		return fmt.Errorf("at least one time slot is required")
	}
	seenTime := make(map[string]bool)
	for _, t := range c.TimeSlots {
		if t == "" {
			return fmt.Errorf("time slot labels must be non-empty")
		}
		if seenTime[t] {
			return fmt.Errorf("duplicate time slot %q", t)
		}
		seenTime[t] = true
	}

	if len(c.Divisions) == 0 {
		return fmt.Errorf("at least one division is required")
	}
	seenDiv := make(map[string]bool)
	seenTeam := make(map[string]string)
	for _, div := range c.Divisions {
		if div.Name == "" {
			return fmt.Errorf("division names must be non-empty")
		}
		if seenDiv[div.Name] {
			return fmt.Errorf("duplicate division %q", div.Name)
		}
		seenDiv[div.Name] = true
		for _, team := range div.Teams {
			if team == "" {
				return fmt.Errorf("division %q has an empty team name", div.Name)
			}
			if prevDiv, ok := seenTeam[team]; ok {
				return fmt.Errorf("team %q appears in both %q and %q divisions", team, prevDiv, div.Name)
			}
			seenTeam[team] = div.Name
		}
	}

	for i, u := range c.Unavailability {
		if u.Team == "" {
			return fmt.Errorf("unavailability record %d has no team", i+1)
		}
		if u.Date.Time.IsZero() {
			return fmt.Errorf("unavailability record %d for %q has no date", i+1, u.Team)
		}
	}

	return nil
}
