package domain

import (
	"fmt"
	"time"
)

// DayOverride operator-set open-slot count for one exact date.
// Takes precedence over the weekday default when present.
type DayOverride struct {
	ID             int64
	Date           time.Time
	OpenSlotsCount int
	Note           *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the override against the defined slot grid
func (o *DayOverride) Validate() error {
	if o.Date.IsZero() {
		return fmt.Errorf("day override: date is required")
	}
	if o.OpenSlotsCount < 0 || o.OpenSlotsCount > TotalSlotTimes() {
		return fmt.Errorf("day override: openSlotsCount must be in [0, %d]", TotalSlotTimes())
	}
	return nil
}

// OpenSlotsForDate resolves the open-slot count for a date: the override
// wins when present, otherwise the weekday table applies
func OpenSlotsForDate(date time.Time, override *DayOverride) int {
	if override != nil {
		return override.OpenSlotsCount
	}
	return OpenSlotsForWeekday(date.Weekday())
}
