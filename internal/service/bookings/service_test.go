package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/auditlog"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/leadintake"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	byToken map[string]*domain.Booking
	list    []*domain.Booking

	cancelErr   error
	tokenErr    error
	priceErr    error
	filterErr   error
	cancelledID int64
	priceMin    float64
	priceMax    float64
	priceID     int64
}

func (f *fakeRepo) GetByManageToken(_ context.Context, token string) (*domain.Booking, error) {
	if f.tokenErr != nil {
		return nil, f.tokenErr
	}
	if b, ok := f.byToken[token]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	for _, b := range f.list {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	return f.list, nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelledID = id
	return nil
}

func (f *fakeRepo) SetAcceptedPrice(_ context.Context, id int64, priceMin, priceMax float64) error {
	if f.priceErr != nil {
		return f.priceErr
	}
	f.priceID = id
	f.priceMin = priceMin
	f.priceMax = priceMax
	return nil
}

type fakeLeadClient struct {
	err  error
	lead *leadintake.RescheduleLead
}

func (f *fakeLeadClient) SubmitRescheduleRequest(_ context.Context, lead *leadintake.RescheduleLead) error {
	if f.err != nil {
		return f.err
	}
	f.lead = lead
	return nil
}

type fakeAudit struct {
	events []*auditlog.Event
}

func (f *fakeAudit) RecordAsync(event *auditlog.Event) {
	f.events = append(f.events, event)
}

const testToken = "deadbeefdeadbeefdeadbeefdeadbeef"

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:             10,
		BookingDate:    time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
		StartSlotIndex: 1, // старт 12:00
		SlotCount:      1,
		Status:         domain.StatusConfirmed,
		Lane:           domain.LaneStandard,
		ManageToken:    testToken,
		CustomerName:   "Anna K",
		CustomerEmail:  "anna@example.com",
	}
}

func newTestService(repo *fakeRepo, leads *fakeLeadClient, audit *fakeAudit, now time.Time) *Service {
	return NewService(repo, leads, audit, 24, nopLogger{}).WithTimeProvider(fixedTime{now: now})
}

func TestService_Cancel(t *testing.T) {
	// бронирование стартует 6 января в 12:00
	farAhead := time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC)
	lastMinute := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)

	t.Run("cancellation well in advance", func(t *testing.T) {
		booking := activeBooking()
		repo := &fakeRepo{byToken: map[string]*domain.Booking{testToken: booking}}
		audit := &fakeAudit{}
		svc := newTestService(repo, &fakeLeadClient{}, audit, farAhead)

		resp, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{ManageToken: testToken})
		require.NoError(t, err)

		assert.Equal(t, booking.ID, resp.BookingID)
		assert.Equal(t, "cancelled", resp.Status)
		assert.False(t, resp.AlreadyCancelled)
		assert.False(t, resp.ShortNotice)
		assert.Equal(t, booking.ID, repo.cancelledID)

		require.Len(t, audit.events, 1)
		assert.Equal(t, "booking_cancelled", audit.events[0].Action)
	})

	t.Run("short notice flag inside 24 hours", func(t *testing.T) {
		booking := activeBooking()
		repo := &fakeRepo{byToken: map[string]*domain.Booking{testToken: booking}}
		svc := newTestService(repo, &fakeLeadClient{}, &fakeAudit{}, lastMinute)

		resp, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{ManageToken: testToken})
		require.NoError(t, err)

		// отмена не блокируется, но помечается
		assert.True(t, resp.ShortNotice)
	})

	t.Run("repeated cancel is an idempotent success", func(t *testing.T) {
		booking := activeBooking()
		booking.Status = domain.StatusCancelled
		repo := &fakeRepo{byToken: map[string]*domain.Booking{testToken: booking}}
		audit := &fakeAudit{}
		svc := newTestService(repo, &fakeLeadClient{}, audit, farAhead)

		resp, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{ManageToken: testToken})
		require.NoError(t, err)

		assert.True(t, resp.AlreadyCancelled)
		assert.False(t, resp.ShortNotice)
		assert.Zero(t, repo.cancelledID, "repository must not be touched again")
		assert.Empty(t, audit.events)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeLeadClient{}, &fakeAudit{}, farAhead)

		_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{ManageToken: "nope"})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("empty token", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeLeadClient{}, &fakeAudit{}, farAhead)

		_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		booking := activeBooking()
		repo := &fakeRepo{
			byToken:   map[string]*domain.Booking{testToken: booking},
			cancelErr: errors.New("db down"),
		}
		svc := newTestService(repo, &fakeLeadClient{}, &fakeAudit{}, farAhead)

		_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{ManageToken: testToken})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_RequestReschedule(t *testing.T) {
	now := time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC)

	t.Run("lead is delivered with booking context", func(t *testing.T) {
		booking := activeBooking()
		repo := &fakeRepo{byToken: map[string]*domain.Booking{testToken: booking}}
		leads := &fakeLeadClient{}
		audit := &fakeAudit{}
		svc := newTestService(repo, leads, audit, now)

		err := svc.RequestReschedule(context.Background(), &models.RescheduleRequest{
			ManageToken: testToken,
			Note:        "can we move to Friday?",
		})
		require.NoError(t, err)

		require.NotNil(t, leads.lead)
		assert.Equal(t, booking.ID, leads.lead.BookingID)
		assert.Equal(t, "2026-01-06", leads.lead.BookingDate)
		assert.Equal(t, "12:00", leads.lead.StartTime)
		assert.Equal(t, "can we move to Friday?", leads.lead.Note)

		require.Len(t, audit.events, 1)
		assert.Equal(t, "reschedule_requested", audit.events[0].Action)
	})

	t.Run("cancelled booking is rejected", func(t *testing.T) {
		booking := activeBooking()
		booking.Status = domain.StatusCancelled
		repo := &fakeRepo{byToken: map[string]*domain.Booking{testToken: booking}}
		svc := newTestService(repo, &fakeLeadClient{}, &fakeAudit{}, now)

		err := svc.RequestReschedule(context.Background(), &models.RescheduleRequest{ManageToken: testToken})
		assert.ErrorIs(t, err, ErrBookingCancelled)
	})

	t.Run("delivery failure surfaces as lead error", func(t *testing.T) {
		booking := activeBooking()
		repo := &fakeRepo{byToken: map[string]*domain.Booking{testToken: booking}}
		leads := &fakeLeadClient{err: errors.New("operator service down")}
		audit := &fakeAudit{}
		svc := newTestService(repo, leads, audit, now)

		err := svc.RequestReschedule(context.Background(), &models.RescheduleRequest{ManageToken: testToken})
		assert.ErrorIs(t, err, ErrLeadDelivery)
		assert.Empty(t, audit.events)
	})

	t.Run("oversized note is rejected", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeLeadClient{}, &fakeAudit{}, now)

		long := make([]byte, domain.MaxNoteLength+1)
		for i := range long {
			long[i] = 'x'
		}

		err := svc.RequestReschedule(context.Background(), &models.RescheduleRequest{
			ManageToken: testToken,
			Note:        string(long),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_GetBookings(t *testing.T) {
	now := time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC)

	t.Run("list conversion hides the manage token", func(t *testing.T) {
		repo := &fakeRepo{list: []*domain.Booking{activeBooking()}}
		svc := newTestService(repo, &fakeLeadClient{}, &fakeAudit{}, now)

		resp, err := svc.GetBookings(context.Background(), &models.GetBookingsRequest{})
		require.NoError(t, err)

		require.Len(t, resp.Bookings, 1)
		got := resp.Bookings[0]
		assert.Equal(t, int64(10), got.ID)
		assert.Equal(t, "2026-01-06", got.BookingDate)
		assert.Equal(t, "12:00", got.StartTime)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeLeadClient{}, &fakeAudit{}, now)

		bad := "archived"
		_, err := svc.GetBookings(context.Background(), &models.GetBookingsRequest{Status: &bad})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &fakeRepo{filterErr: errors.New("db down")}
		svc := newTestService(repo, &fakeLeadClient{}, &fakeAudit{}, now)

		_, err := svc.GetBookings(context.Background(), &models.GetBookingsRequest{})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_SetAcceptedPrice(t *testing.T) {
	now := time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC)

	t.Run("valid range is stored and audited", func(t *testing.T) {
		repo := &fakeRepo{}
		audit := &fakeAudit{}
		svc := newTestService(repo, &fakeLeadClient{}, audit, now)

		err := svc.SetAcceptedPrice(context.Background(), 10, &models.SetAcceptedPriceRequest{
			PriceMin: 120,
			PriceMax: 180,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(10), repo.priceID)
		assert.Equal(t, 120.0, repo.priceMin)
		assert.Equal(t, 180.0, repo.priceMax)

		require.Len(t, audit.events, 1)
		assert.Equal(t, "price_accepted", audit.events[0].Action)
	})

	t.Run("point range is allowed", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo, &fakeLeadClient{}, &fakeAudit{}, now)

		err := svc.SetAcceptedPrice(context.Background(), 10, &models.SetAcceptedPriceRequest{
			PriceMin: 150,
			PriceMax: 150,
		})
		assert.NoError(t, err)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeLeadClient{}, &fakeAudit{}, now)

		err := svc.SetAcceptedPrice(context.Background(), 10, &models.SetAcceptedPriceRequest{
			PriceMin: 200,
			PriceMax: 100,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown booking", func(t *testing.T) {
		repo := &fakeRepo{priceErr: bookingRepo.ErrBookingNotFound}
		svc := newTestService(repo, &fakeLeadClient{}, &fakeAudit{}, now)

		err := svc.SetAcceptedPrice(context.Background(), 404, &models.SetAcceptedPriceRequest{
			PriceMin: 100,
			PriceMax: 150,
		})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestSlotStartAt(t *testing.T) {
	date := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)

	start, ok := slotStartAt(date, 2)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC), start)

	_, ok = slotStartAt(date, 5)
	assert.False(t, ok)
}

func TestTokenPrefix(t *testing.T) {
	assert.Equal(t, "short", tokenPrefix("short"))
	assert.Equal(t, "deadbeef", tokenPrefix(testToken))
}
