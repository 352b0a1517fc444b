package request_reschedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные заявки"
	msgBookingNotFound    = "бронирование не найдено"
	msgBookingCancelled   = "бронирование отменено, перенос невозможен"
	msgLeadDelivery       = "заявка на перенос не принята, повторите запрос"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/reschedule-request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/reschedule-request - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.RequestReschedule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/reschedule-request - Booking not found")
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrBookingCancelled):
			h.logger.Warn("POST /bookings/reschedule-request - Booking is cancelled")
			handlers.RespondError(w, http.StatusConflict, msgBookingCancelled)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/reschedule-request - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookings.ErrLeadDelivery):
			h.logger.Error("POST /bookings/reschedule-request - Lead delivery failed: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgLeadDelivery)

		default:
			h.logger.Error("POST /bookings/reschedule-request - Failed to submit reschedule request: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/reschedule-request - Reschedule lead accepted")
	handlers.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
