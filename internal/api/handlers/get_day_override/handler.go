package get_day_override

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/overrides"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgOverrideNotFound = "переопределение на дату не найдено"
)

type Handler struct {
	service OverrideService
	logger  Logger
}

func NewHandler(service OverrideService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/day-overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /admin/day-overrides/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetByDate(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, overrides.ErrOverrideNotFound):
			h.logger.Warn("GET /admin/day-overrides/{date} - Override not found: date=%s",
				date.Format(domain.DateFormat))
			handlers.RespondNotFound(w, msgOverrideNotFound)

		default:
			h.logger.Error("GET /admin/day-overrides/{date} - Failed to get override: date=%s, error=%v",
				date.Format(domain.DateFormat), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/day-overrides/{date} - Override retrieved: date=%s, openSlots=%d",
		result.Date, result.OpenSlotsCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
