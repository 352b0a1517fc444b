package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func TestOpenSlotsForWeekday(t *testing.T) {
	tests := []struct {
		weekday time.Weekday
		want    int
	}{
		{time.Sunday, 1},
		{time.Monday, 2},
		{time.Tuesday, 3},
		{time.Wednesday, 3},
		{time.Thursday, 3},
		{time.Friday, 2},
		{time.Saturday, 2},
	}

	for _, tt := range tests {
		t.Run(tt.weekday.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, OpenSlotsForWeekday(tt.weekday))
		})
	}
}

func TestSlotTimeAt(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  types.TimeString
		ok    bool
	}{
		{name: "first slot", index: 0, want: "09:00", ok: true},
		{name: "second slot", index: 1, want: "12:00", ok: true},
		{name: "third slot", index: 2, want: "15:00", ok: true},
		{name: "negative index", index: -1, ok: false},
		{name: "past the grid", index: 3, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SlotTimeAt(tt.index)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotTimes_ReturnsCopy(t *testing.T) {
	first := SlotTimes()
	require.Len(t, first, TotalSlotTimes())

	first[0] = "06:00"

	second := SlotTimes()
	assert.Equal(t, types.TimeString("09:00"), second[0])
}

func TestDayTemplate_IsBooked(t *testing.T) {
	tpl := DayTemplate{
		Date:           time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
		OpenSlotsCount: 3,
		BookedSlots:    map[int]struct{}{1: {}},
	}

	assert.False(t, tpl.IsBooked(0))
	assert.True(t, tpl.IsBooked(1))
	assert.False(t, tpl.IsBooked(2))
}

func TestDayTemplate_HasCapacityFor(t *testing.T) {
	tpl := DayTemplate{OpenSlotsCount: 2}

	assert.True(t, tpl.HasCapacityFor(1))
	assert.True(t, tpl.HasCapacityFor(2))
	assert.False(t, tpl.HasCapacityFor(3))
	assert.False(t, tpl.HasCapacityFor(0))

	closed := DayTemplate{OpenSlotsCount: 0}
	assert.False(t, closed.HasCapacityFor(1))
}

func TestOpenSlotsForDate(t *testing.T) {
	wednesday := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Wednesday, wednesday.Weekday())

	t.Run("weekday table applies without override", func(t *testing.T) {
		assert.Equal(t, 3, OpenSlotsForDate(wednesday, nil))
	})

	t.Run("override wins over the weekday table", func(t *testing.T) {
		override := &DayOverride{Date: wednesday, OpenSlotsCount: 1}
		assert.Equal(t, 1, OpenSlotsForDate(wednesday, override))
	})

	t.Run("zero override closes the day", func(t *testing.T) {
		override := &DayOverride{Date: wednesday, OpenSlotsCount: 0}
		assert.Equal(t, 0, OpenSlotsForDate(wednesday, override))
	})
}

func TestDayOverride_Validate(t *testing.T) {
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		override DayOverride
		wantErr  bool
	}{
		{name: "valid", override: DayOverride{Date: date, OpenSlotsCount: 2}},
		{name: "zero slots is allowed", override: DayOverride{Date: date, OpenSlotsCount: 0}},
		{name: "full grid is allowed", override: DayOverride{Date: date, OpenSlotsCount: TotalSlotTimes()}},
		{name: "missing date", override: DayOverride{OpenSlotsCount: 1}, wantErr: true},
		{name: "negative count", override: DayOverride{Date: date, OpenSlotsCount: -1}, wantErr: true},
		{name: "count above the grid", override: DayOverride{Date: date, OpenSlotsCount: TotalSlotTimes() + 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.override.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBooking_OverlapsRange(t *testing.T) {
	booking := Booking{StartSlotIndex: 1, SlotCount: 2} // occupies slots 1 and 2

	tests := []struct {
		name       string
		startIndex int
		slotCount  int
		want       bool
	}{
		{name: "same range", startIndex: 1, slotCount: 2, want: true},
		{name: "touches first occupied slot", startIndex: 0, slotCount: 2, want: true},
		{name: "inside the range", startIndex: 2, slotCount: 1, want: true},
		{name: "fully before", startIndex: 0, slotCount: 1, want: false},
		{name: "adjacent ranges do not overlap", startIndex: 3, slotCount: 1, want: false},
		{name: "covers the whole range", startIndex: 0, slotCount: 3, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.OverlapsRange(tt.startIndex, tt.slotCount))
		})
	}
}

func TestBooking_StatusHelpers(t *testing.T) {
	active := Booking{Status: StatusConfirmed}
	assert.True(t, active.IsActive())
	assert.False(t, active.IsCancelled())

	cancelled := Booking{Status: StatusCancelled}
	assert.False(t, cancelled.IsActive())
	assert.True(t, cancelled.IsCancelled())
}
