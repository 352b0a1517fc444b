package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case для получения доступных стартов бронирования
type UseCase struct {
	bookingRepo        BookingRepository
	overrideRepo       OverrideRepository
	timeProvider       TimeProvider
	logger             Logger
	standardWindowDays int
	acuteWindowDays    int
	demoSeed           bool
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	overrideRepo OverrideRepository,
	standardWindowDays int,
	acuteWindowDays int,
	demoSeed bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:        bookingRepo,
		overrideRepo:       overrideRepo,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
		standardWindowDays: standardWindowDays,
		acuteWindowDays:    acuteWindowDays,
		demoSeed:           demoSeed,
	}
}

// Execute выполняет use case получения доступных стартов
// Никаких побочных эффектов: чистое чтение и вычисление
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем окно: старт и длину
	now := uc.timeProvider.Now()

	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if req.FromDate != nil {
		d := *req.FromDate
		from = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}

	lane := req.Lane
	if lane == "" {
		lane = domain.LaneStandard
	}

	dayCount := req.DayCount
	if dayCount == 0 {
		if lane == domain.LaneAcute {
			dayCount = uc.acuteWindowDays
		} else {
			dayCount = uc.standardWindowDays
		}
	}

	uc.logger.Info("GetAvailability: from=%s, days=%d, slotCount=%d, lane=%s",
		from.Format(domain.DateFormat), dayCount, req.SlotCount, lane)

	to := from.AddDate(0, 0, dayCount-1)

	// 3. Загружаем переопределения открытых слотов на окно
	overrides, err := uc.overrideRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get day overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get day overrides: %v", ErrInternal, err)
	}

	// 4. Генерируем шаблоны дней
	templates := generateDayTemplates(from, dayCount, overrides)

	// 5. Загружаем активные бронирования окна и помечаем занятые слоты
	filter := domain.BookingsFilter{
		StartDate:       &from,
		EndDate:         &to,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// Демо-паттерн занятых слотов применяется только при полном отсутствии
	// живых данных: живые бронирования всегда его заменяют
	if uc.demoSeed && len(bookings) == 0 {
		seedDemoBookings(templates, lane)
	}

	applyBookings(templates, bookings)

	// 6. Вычисляем допустимые старты для каждого дня
	days := make([]DayAvailability, 0, len(templates))
	for i := range templates {
		indexes := validStartIndexes(&templates[i], req.SlotCount)

		startTimes := make([]types.TimeString, 0, len(indexes))
		for _, idx := range indexes {
			if t, ok := domain.SlotTimeAt(idx); ok {
				startTimes = append(startTimes, t)
			}
		}

		days = append(days, DayAvailability{
			Date:            templates[i].Date,
			OpenSlotsCount:  templates[i].OpenSlotsCount,
			ValidStartIndex: indexes,
			ValidStartTimes: startTimes,
		})
	}

	uc.logger.Info("GetAvailability: computed %d days for lane=%s", len(days), lane)

	return &Response{
		FromDate: from,
		DayCount: dayCount,
		Lane:     lane,
		Days:     days,
	}, nil
}
