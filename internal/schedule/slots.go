package schedule

import (
	"time"

	"github.com/courtside/fixtures/internal/config"
)

// Slot is a bookable (date, time, court) unit of schedule capacity.
type Slot struct {
	Date  time.Time
	Time  string // "09:00", "10:30", etc.
	Court string
}

// BuildSlotGrid enumerates every slot for the season in a fixed order: date
// ascending, then court in catalogue order, then time in catalogue order.
// No filtering happens here; constraints are evaluated at assignment time.
func BuildSlotGrid(dates []time.Time, cfg *config.Config) []Slot {
	slots := make([]Slot, 0, len(dates)*len(cfg.Courts)*len(cfg.TimeSlots))
	for _, d := range dates {
		for _, court := range cfg.Courts {
			for _, t := range cfg.TimeSlots {
				slots = append(slots, Slot{Date: d, Time: t, Court: court})
			}
		}
	}
	return slots
}
