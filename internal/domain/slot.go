package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// slotTimes canonical ordered list of daily slot start times.
// Slot indices used throughout the service are positions in this list.
var slotTimes = []types.TimeString{"09:00", "12:00", "15:00"}

// SlotTimes returns a copy of the canonical ordered slot start times
func SlotTimes() []types.TimeString {
	out := make([]types.TimeString, len(slotTimes))
	copy(out, slotTimes)
	return out
}

// TotalSlotTimes returns the number of defined slot start times per day
func TotalSlotTimes() int {
	return len(slotTimes)
}

// SlotTimeAt returns the start time for a slot index, and false when the
// index is outside the canonical list
func SlotTimeAt(index int) (types.TimeString, bool) {
	if index < 0 || index >= len(slotTimes) {
		return "", false
	}
	return slotTimes[index], true
}

// OpenSlotsForWeekday returns how many of the daily slots are open on the
// given weekday. Pure lookup: Sunday is the least-demanded day, the middle
// of the week carries full capacity.
func OpenSlotsForWeekday(weekday time.Weekday) int {
	switch weekday {
	case time.Sunday:
		return 1
	case time.Tuesday, time.Wednesday, time.Thursday:
		return 3
	default:
		return 2
	}
}

// DayTemplate describes one bookable calendar day: how many slots are open
// and which slot indices are already taken
type DayTemplate struct {
	Date           time.Time
	OpenSlotsCount int
	BookedSlots    map[int]struct{}
}

// IsBooked returns true if the slot index is taken on this day
func (t *DayTemplate) IsBooked(index int) bool {
	_, ok := t.BookedSlots[index]
	return ok
}

// HasCapacityFor returns true if a run of slotCount slots can fit the day
// at all, ignoring booked slots
func (t *DayTemplate) HasCapacityFor(slotCount int) bool {
	return slotCount >= MinSlotCount && slotCount <= t.OpenSlotsCount
}

// SlotKey identity of one bookable unit: civil date plus slot index
type SlotKey struct {
	Date      string // YYYY-MM-DD
	SlotIndex int
}

// NewSlotKey builds a SlotKey from a date and slot index
func NewSlotKey(date time.Time, index int) SlotKey {
	return SlotKey{Date: date.Format(DateFormat), SlotIndex: index}
}
