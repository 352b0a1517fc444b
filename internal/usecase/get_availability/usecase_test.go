package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error

	gotFilter domain.BookingsFilter
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

type fakeOverrideRepo struct {
	overrides map[string]*domain.DayOverride
	err       error
}

func (f *fakeOverrideRepo) GetByDateRange(_ context.Context, _, _ time.Time) (map[string]*domain.DayOverride, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.overrides, nil
}

func newTestUseCase(bookingRepo *fakeBookingRepo, overrideRepo *fakeOverrideRepo, demoSeed bool, now time.Time) *UseCase {
	uc := NewUseCase(bookingRepo, overrideRepo, 30, 14, demoSeed, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestUseCase_Execute_Validation(t *testing.T) {
	now := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeOverrideRepo{}, false, now)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero slot count", req: &Request{SlotCount: 0}},
		{name: "negative day count", req: &Request{SlotCount: 1, DayCount: -1}},
		{name: "day count above the limit", req: &Request{SlotCount: 1, DayCount: domain.MaxDayCount + 1}},
		{name: "unknown lane", req: &Request{SlotCount: 1, Lane: "vip"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_Defaults(t *testing.T) {
	now := time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC) // понедельник

	t.Run("empty lane and day count fall back to standard window", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeOverrideRepo{}, false, now)

		resp, err := uc.Execute(context.Background(), &Request{SlotCount: 1})
		require.NoError(t, err)

		assert.Equal(t, domain.LaneStandard, resp.Lane)
		assert.Equal(t, 30, resp.DayCount)
		assert.Len(t, resp.Days, 30)
		assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), resp.FromDate)
	})

	t.Run("acute lane gets the shorter window", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeOverrideRepo{}, false, now)

		resp, err := uc.Execute(context.Background(), &Request{SlotCount: 1, Lane: domain.LaneAcute})
		require.NoError(t, err)

		assert.Equal(t, domain.LaneAcute, resp.Lane)
		assert.Equal(t, 14, resp.DayCount)
		assert.Len(t, resp.Days, 14)
	})

	t.Run("explicit day count wins over the lane default", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeOverrideRepo{}, false, now)

		resp, err := uc.Execute(context.Background(), &Request{SlotCount: 1, DayCount: 5})
		require.NoError(t, err)
		assert.Len(t, resp.Days, 5)
	})

	t.Run("explicit from date wins over today", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeOverrideRepo{}, false, now)

		from := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
		resp, err := uc.Execute(context.Background(), &Request{SlotCount: 1, DayCount: 1, FromDate: &from})
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), resp.FromDate)
	})
}

func TestUseCase_Execute_AvailabilityComputation(t *testing.T) {
	// Вторник: по таблице дня недели открыто 3 слота
	now := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)
	require.Equal(t, time.Tuesday, now.Weekday())

	t.Run("free day exposes all valid starts", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeOverrideRepo{}, false, now)

		resp, err := uc.Execute(context.Background(), &Request{SlotCount: 2, DayCount: 1})
		require.NoError(t, err)
		require.Len(t, resp.Days, 1)

		day := resp.Days[0]
		assert.Equal(t, 3, day.OpenSlotsCount)
		assert.Equal(t, []int{0, 1}, day.ValidStartIndex)
		assert.Equal(t, []types.TimeString{"09:00", "12:00"}, day.ValidStartTimes)
	})

	t.Run("active booking blocks overlapping starts", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{{
			BookingDate:    time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
			StartSlotIndex: 1,
			SlotCount:      1,
			Status:         domain.StatusConfirmed,
		}}}
		uc := newTestUseCase(repo, &fakeOverrideRepo{}, false, now)

		resp, err := uc.Execute(context.Background(), &Request{SlotCount: 2, DayCount: 1})
		require.NoError(t, err)

		assert.Empty(t, resp.Days[0].ValidStartIndex)
		assert.False(t, repo.gotFilter.IncludeInactive)
	})

	t.Run("override closes the day", func(t *testing.T) {
		date := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
		overrideRepo := &fakeOverrideRepo{overrides: map[string]*domain.DayOverride{
			date.Format(domain.DateFormat): {Date: date, OpenSlotsCount: 0},
		}}
		uc := newTestUseCase(&fakeBookingRepo{}, overrideRepo, false, now)

		resp, err := uc.Execute(context.Background(), &Request{SlotCount: 1, DayCount: 1})
		require.NoError(t, err)

		assert.Equal(t, 0, resp.Days[0].OpenSlotsCount)
		assert.Empty(t, resp.Days[0].ValidStartIndex)
	})
}

func TestUseCase_Execute_DemoSeed(t *testing.T) {
	// 2 января 2026 - пятница, чётный день месяца
	now := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)

	t.Run("seed applies when there are no live bookings", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeOverrideRepo{}, true, now)

		resp, err := uc.Execute(context.Background(), &Request{SlotCount: 1, DayCount: 1, Lane: domain.LaneAcute})
		require.NoError(t, err)

		// чётный день: утренний слот занят демо-паттерном
		assert.NotContains(t, resp.Days[0].ValidStartIndex, 0)
	})

	t.Run("live bookings disable the seed", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: []*domain.Booking{{
			BookingDate:    time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			StartSlotIndex: 1,
			SlotCount:      1,
			Status:         domain.StatusConfirmed,
		}}}
		uc := newTestUseCase(repo, &fakeOverrideRepo{}, true, now)

		resp, err := uc.Execute(context.Background(), &Request{SlotCount: 1, DayCount: 1, Lane: domain.LaneAcute})
		require.NoError(t, err)

		// утренний слот свободен: занят только слот живого бронирования
		assert.Contains(t, resp.Days[0].ValidStartIndex, 0)
		assert.NotContains(t, resp.Days[0].ValidStartIndex, 1)
	})

	t.Run("seed disabled by configuration", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeOverrideRepo{}, false, now)

		resp, err := uc.Execute(context.Background(), &Request{SlotCount: 1, DayCount: 1, Lane: domain.LaneAcute})
		require.NoError(t, err)

		assert.Contains(t, resp.Days[0].ValidStartIndex, 0)
	})
}

func TestUseCase_Execute_RepoErrors(t *testing.T) {
	now := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	t.Run("override repo failure", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{}, &fakeOverrideRepo{err: errors.New("db down")}, false, now)

		_, err := uc.Execute(context.Background(), &Request{SlotCount: 1, DayCount: 1})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("booking repo failure", func(t *testing.T) {
		uc := newTestUseCase(&fakeBookingRepo{err: errors.New("db down")}, &fakeOverrideRepo{}, false, now)

		_, err := uc.Execute(context.Background(), &Request{SlotCount: 1, DayCount: 1})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
