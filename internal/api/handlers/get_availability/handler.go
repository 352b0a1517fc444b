package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

const (
	msgInvalidFrom      = "некорректный формат даты from, ожидается YYYY-MM-DD"
	msgInvalidDays      = "некорректное значение days"
	msgInvalidSlotCount = "некорректное значение slots"
	msgInvalidRequest   = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: slots (required), from (optional, YYYY-MM-DD),
// days (optional), lane (optional, standard|acute)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	slotCount, err := strconv.Atoi(query.Get("slots"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid slots param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotCount)
		return
	}

	dayCount := 0
	if daysStr := query.Get("days"); daysStr != "" {
		dayCount, err = strconv.Atoi(daysStr)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid days param: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	useCaseReq, err := ToUseCaseRequest(query.Get("from"), dayCount, slotCount, query.Get("lane"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid from param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /availability - Failed to resolve availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability - Availability resolved: lane=%s, days=%d, slots=%d",
		result.Lane, result.DayCount, slotCount)
	handlers.RespondJSON(w, http.StatusOK, response)
}
