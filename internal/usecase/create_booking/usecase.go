package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	overrideRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/override"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/auditlog"
)

// UseCase use case создания бронирования
//
// Единственная точка, создающая бронирования. Проверка доступности и вставка
// выполняются в одной сериализуемой транзакции с блокировкой строк даты
// (FOR UPDATE): из двух конкурирующих запросов на пересекающиеся диапазоны
// ровно один успешен, второй получает ErrSlotConflict. Паттерн
// "проверить доступность, потом отдельно вставить" без общей транзакции
// здесь запрещён
type UseCase struct {
	bookingRepo    BookingRepository
	overrideRepo   OverrideRepository
	txManager      TransactionManager
	audit          AuditRecorder
	timeProvider   TimeProvider
	logger         Logger
	reserveTimeout time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	overrideRepo OverrideRepository,
	txManager TransactionManager,
	audit AuditRecorder,
	reserveTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		overrideRepo:   overrideRepo,
		txManager:      txManager,
		audit:          audit,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		reserveTimeout: reserveTimeout,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, start=%d, count=%d, lane=%s",
		req.Date.Format(domain.DateFormat), req.StartSlotIndex, req.SlotCount, req.Lane)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if err := validateDateNotInPast(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 2. Идемпотентность: повторная отправка того же логического запроса
	// возвращает ранее созданное бронирование, а не дубликат
	if req.ClientRequestID != nil {
		existing, err := uc.bookingRepo.GetByClientRequestID(ctx, *req.ClientRequestID)
		if err == nil {
			uc.logger.Info("CreateBooking: request %s already processed, booking id=%d",
				*req.ClientRequestID, existing.ID)
			return toResponse(existing, true), nil
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: idempotency lookup failed: %v", err)
			return nil, fmt.Errorf("%w: idempotency lookup failed: %v", ErrStoreUnavailable, err)
		}
	}

	// 3. Таймаут на резервирование: медленное хранилище не должно держать
	// соединение клиента. По таймауту исход неизвестен - вызывающий
	// перечитывает по идемпотентному ключу
	reserveCtx := ctx
	if uc.reserveTimeout > 0 {
		var cancel context.CancelFunc
		reserveCtx, cancel = context.WithTimeout(ctx, uc.reserveTimeout)
		defer cancel()
	}

	var result *domain.Booking

	// 4. Атомарная проверка и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(reserveCtx, func(txCtx context.Context) error {
		// 4.1. Открытые слоты на дату: переопределение оператора важнее
		// таблицы по дню недели
		dayOverride, err := uc.overrideRepo.GetByDate(txCtx, req.Date)
		if err != nil && !errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			uc.logger.Error("CreateBooking: failed to get day override: %v", err)
			return fmt.Errorf("%w: failed to get day override: %v", ErrStoreUnavailable, err)
		}

		openSlots := domain.OpenSlotsForDate(req.Date, dayOverride)

		if req.StartSlotIndex+req.SlotCount > openSlots {
			uc.logger.Warn("CreateBooking: range [%d,%d) exceeds %d open slots on %s",
				req.StartSlotIndex, req.StartSlotIndex+req.SlotCount, openSlots,
				req.Date.Format(domain.DateFormat))
			return ErrRangeExceedsDay
		}

		// 4.2. Перечитываем активные бронирования даты с блокировкой строк.
		// Это закрывает гонку между "клиент видел доступность" и
		// "клиент отправил бронирование"
		filter := domain.BookingsFilter{
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrStoreUnavailable, err)
		}

		if conflict := findConflict(bookings, req.StartSlotIndex, req.SlotCount); conflict != nil {
			uc.logger.Warn("CreateBooking: range [%d,%d) on %s conflicts with booking id=%d",
				req.StartSlotIndex, req.StartSlotIndex+req.SlotCount,
				req.Date.Format(domain.DateFormat), conflict.ID)
			return ErrSlotConflict
		}

		// 4.3. Создаем бронирование
		token, err := newManageToken()
		if err != nil {
			return err
		}

		lane := req.Lane
		if lane == "" {
			lane = domain.LaneStandard
		}

		booking := &domain.Booking{
			BookingDate:     req.Date,
			StartSlotIndex:  req.StartSlotIndex,
			SlotCount:       req.SlotCount,
			Status:          domain.StatusConfirmed,
			Lane:            lane,
			ManageToken:     token,
			ClientRequestID: req.ClientRequestID,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			Note:            req.Note,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	// Уникальный индекс по client_request_id мог сработать в гонке двух
	// одинаковых запросов: проигравший возвращает бронирование победителя
	if errors.Is(err, bookingRepo.ErrDuplicateRequest) && req.ClientRequestID != nil {
		existing, lookupErr := uc.bookingRepo.GetByClientRequestID(ctx, *req.ClientRequestID)
		if lookupErr == nil {
			uc.logger.Info("CreateBooking: duplicate request %s resolved to booking id=%d",
				*req.ClientRequestID, existing.ID)
			return toResponse(existing, true), nil
		}
		uc.logger.Error("CreateBooking: duplicate request lookup failed: %v", lookupErr)
		return nil, fmt.Errorf("%w: duplicate request lookup failed: %v", ErrStoreUnavailable, lookupErr)
	}

	if err != nil {
		// Таймаут или обрыв: запись могла закоммититься, но успехом это
		// не считается - вызывающий перечитывает по идемпотентному ключу
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			uc.logger.Error("CreateBooking: reservation outcome unknown: %v", err)
			return nil, fmt.Errorf("%w: reservation timed out: %v", ErrStoreUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, token=%s...", result.ID, tokenPrefix(result.ManageToken))

	// 5. Аудит fire-and-forget: сбой доставки не откатывает бронирование
	uc.audit.RecordAsync(&auditlog.Event{
		Action:    "booking_created",
		BookingID: result.ID,
		Date:      result.BookingDate.Format(domain.DateFormat),
		Details:   fmt.Sprintf("slots [%d,%d)", result.StartSlotIndex, result.StartSlotIndex+result.SlotCount),
	})

	return toResponse(result, false), nil
}
