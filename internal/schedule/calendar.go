package schedule

import (
	"fmt"
	"time"

	"github.com/courtside/fixtures/internal/config"
)

// ConfigError is a fatal configuration problem detected before any slot is
// assigned. A run that returns one carries no schedule, only the log.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return e.Reason }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// PlayDates expands the season range into the ordered list of dates eligible
// for scheduling: every date in [start, end] whose weekday is a play day and
// which is not blacked out. Blackout dates outside the range are ignored.
func PlayDates(cfg *config.Config) ([]time.Time, error) {
	start := cfg.Season.StartDate.Time
	end := cfg.Season.EndDate.Time
	if start.After(end) {
		return nil, configErrorf("start date %s is after end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	days := cfg.PlayWeekdays()
	if len(days) == 0 {
		return nil, configErrorf("no play days configured")
	}

	blackouts := make(map[time.Time]bool)
	for _, b := range cfg.Season.BlackoutDates {
		blackouts[b.Date.Time] = true
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if days[d.Weekday()] && !blackouts[d] {
			dates = append(dates, d)
		}
	}
	return dates, nil
}
