package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/auditlog"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/leadintake"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// Service сервис для работы с существующими бронированиями
// Клиентские операции адресуются manage-токеном, а не числовым ID:
// токен выдаётся при создании и является единственным пропуском клиента
type Service struct {
	bookingRepo      BookingRepository
	leadClient       LeadIntakeClient
	audit            AuditRecorder
	timeProvider     TimeProvider
	shortNoticeHours int
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	leadClient LeadIntakeClient,
	audit AuditRecorder,
	shortNoticeHours int,
	logger Logger,
) *Service {
	if shortNoticeHours <= 0 {
		shortNoticeHours = domain.DefaultShortNoticeHours
	}
	return &Service{
		bookingRepo:      bookingRepo,
		leadClient:       leadClient,
		audit:            audit,
		timeProvider:     RealTimeProvider{},
		shortNoticeHours: shortNoticeHours,
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Cancel отменяет бронирование по manage-токену
//
// Отмена идемпотентна: повторный запрос на уже отменённое бронирование
// возвращает успех с флагом alreadyCancelled, слоты при этом не трогаются.
// Отмена ближе 24 часов к началу слота помечается флагом shortNotice,
// но не блокируется
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	if req.ManageToken == "" {
		return nil, fmt.Errorf("%w: manage token is required", ErrInvalidInput)
	}

	s.logger.Info("Cancel: cancelling booking by token=%s...", tokenPrefix(req.ManageToken))

	booking, err := s.getByToken(ctx, req.ManageToken, "Cancel")
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		s.logger.Info("Cancel: booking id=%d already cancelled, idempotent success", booking.ID)
		return &models.CancelBookingResponse{
			BookingID:        booking.ID,
			Status:           string(domain.StatusCancelled),
			AlreadyCancelled: true,
		}, nil
	}

	shortNotice := s.isShortNotice(booking)

	if err := s.bookingRepo.Cancel(ctx, booking.ID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d disappeared during cancellation", booking.ID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.audit.RecordAsync(&auditlog.Event{
		Action:    "booking_cancelled",
		BookingID: booking.ID,
		Date:      booking.BookingDate.Format(domain.DateFormat),
		Details:   fmt.Sprintf("shortNotice=%t", shortNotice),
	})

	s.logger.Info("Cancel: successfully cancelled booking id=%d, shortNotice=%t", booking.ID, shortNotice)
	return &models.CancelBookingResponse{
		BookingID:   booking.ID,
		Status:      string(domain.StatusCancelled),
		ShortNotice: shortNotice,
	}, nil
}

// RequestReschedule передает оператору заявку на перенос бронирования
// Само бронирование не изменяется: автоматического пере-слотирования нет,
// новый слот согласовывается вручную
func (s *Service) RequestReschedule(ctx context.Context, req *models.RescheduleRequest) error {
	if req.ManageToken == "" {
		return fmt.Errorf("%w: manage token is required", ErrInvalidInput)
	}
	if len(req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note must not exceed %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	s.logger.Info("RequestReschedule: reschedule requested by token=%s...", tokenPrefix(req.ManageToken))

	booking, err := s.getByToken(ctx, req.ManageToken, "RequestReschedule")
	if err != nil {
		return err
	}

	if booking.IsCancelled() {
		s.logger.Warn("RequestReschedule: booking id=%d is cancelled", booking.ID)
		return ErrBookingCancelled
	}

	startTime := ""
	if t, ok := domain.SlotTimeAt(booking.StartSlotIndex); ok {
		startTime = t.String()
	}

	lead := &leadintake.RescheduleLead{
		BookingID:     booking.ID,
		BookingDate:   booking.BookingDate.Format(domain.DateFormat),
		StartTime:     startTime,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		Note:          req.Note,
	}

	if err := s.leadClient.SubmitRescheduleRequest(ctx, lead); err != nil {
		s.logger.Error("RequestReschedule: lead delivery failed for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: booking id=%d", ErrLeadDelivery, booking.ID)
	}

	s.audit.RecordAsync(&auditlog.Event{
		Action:    "reschedule_requested",
		BookingID: booking.ID,
		Date:      booking.BookingDate.Format(domain.DateFormat),
	})

	s.logger.Info("RequestReschedule: lead submitted for booking id=%d", booking.ID)
	return nil
}

// GetBookings получает бронирования с гибкой фильтрацией
// Используется административным интерфейсом мастерской
//
// Примеры использования:
// - Все активные бронирования: GetBookings(ctx, &GetBookingsRequest{})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Бронирования за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetBookings(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "GetBookings: fetching bookings"
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// SetAcceptedPrice фиксирует принятый ценовой диапазон закрытого заказа
// Записанные пары становятся сэмплами для оценщика стоимости
func (s *Service) SetAcceptedPrice(ctx context.Context, bookingID int64, req *models.SetAcceptedPriceRequest) error {
	s.logger.Info("SetAcceptedPrice: booking id=%d, range=[%.2f, %.2f]", bookingID, req.PriceMin, req.PriceMax)

	if req.PriceMin < 0 || req.PriceMax < req.PriceMin {
		s.logger.Warn("SetAcceptedPrice: invalid range [%.2f, %.2f] for booking id=%d",
			req.PriceMin, req.PriceMax, bookingID)
		return fmt.Errorf("%w: price range must satisfy 0 <= min <= max", ErrInvalidInput)
	}

	if err := s.bookingRepo.SetAcceptedPrice(ctx, bookingID, req.PriceMin, req.PriceMax); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("SetAcceptedPrice: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("SetAcceptedPrice: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: SetAcceptedPrice - repository error: %v", ErrInternal, err)
	}

	s.audit.RecordAsync(&auditlog.Event{
		Action:    "price_accepted",
		BookingID: bookingID,
		Details:   fmt.Sprintf("range=[%.2f, %.2f]", req.PriceMin, req.PriceMax),
	})

	s.logger.Info("SetAcceptedPrice: successfully stored range for booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) getByToken(ctx context.Context, token, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByManageToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: no booking for token=%s...", op, tokenPrefix(token))
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// isShortNotice проверяет, что до начала слота осталось меньше порога
func (s *Service) isShortNotice(booking *domain.Booking) bool {
	start, ok := slotStartAt(booking.BookingDate, booking.StartSlotIndex)
	if !ok {
		return false
	}

	deadline := start.Add(-time.Duration(s.shortNoticeHours) * time.Hour)
	return s.timeProvider.Now().After(deadline)
}

// slotStartAt собирает момент начала слота из даты и индекса слота
func slotStartAt(date time.Time, slotIndex int) (time.Time, bool) {
	slotTime, ok := domain.SlotTimeAt(slotIndex)
	if !ok {
		return time.Time{}, false
	}

	parsed, err := time.Parse(domain.TimeFormat, slotTime.String())
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		date.Location(),
	), true
}

// tokenPrefix возвращает безопасный для логирования префикс manage-токена
func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8]
}
