package get_price_estimate

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	estimatePrice "github.com/m04kA/SMC-AppointmentService/internal/usecase/estimate_price"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры оценки"
)

type Handler struct {
	useCase EstimatePriceUseCase
	logger  Logger
}

func NewHandler(useCase EstimatePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/price-estimate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PriceEstimateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /price-estimate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, estimatePrice.ErrInvalidInput):
			h.logger.Warn("POST /price-estimate - Invalid input: boards=%d: %v", req.BoardCount, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /price-estimate - Failed to estimate: boards=%d, error=%v", req.BoardCount, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /price-estimate - Estimate produced: boards=%d, enabled=%t, samples=%d",
		req.BoardCount, result.Enabled, result.SampleCount)
	handlers.RespondJSON(w, http.StatusOK, response)
}
