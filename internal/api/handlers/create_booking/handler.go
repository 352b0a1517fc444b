package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgDateInPast         = "дата бронирования в прошлом"
	msgRangeExceedsDay    = "диапазон слотов не помещается в открытые слоты дня"
	msgSlotConflict       = "выбранный диапазон слотов уже занят"
	msgStoreUnavailable   = "бронирование не подтверждено, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: date=%s, start=%d, count=%d",
				req.BookingDate, req.StartSlotIndex, req.SlotCount)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrRangeExceedsDay):
			h.logger.Warn("POST /bookings - Range exceeds day: date=%s, start=%d, count=%d",
				req.BookingDate, req.StartSlotIndex, req.SlotCount)
			handlers.RespondBadRequest(w, msgRangeExceedsDay)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Booking date in past: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrStoreUnavailable):
			// Запись могла не зафиксироваться: клиенту предлагается повтор
			// с тем же clientRequestId, идемпотентность защитит от дубля
			h.logger.Error("POST /bookings - Store unavailable: date=%s: %v", req.BookingDate, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, error=%v",
				req.BookingDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, date=%s, start=%d, count=%d, alreadyExisted=%t",
		result.ID, req.BookingDate, req.StartSlotIndex, req.SlotCount, result.AlreadyExisted)
	handlers.RespondJSON(w, status, response)
}
