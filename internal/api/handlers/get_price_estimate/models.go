package get_price_estimate

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	estimatePrice "github.com/m04kA/SMC-AppointmentService/internal/usecase/estimate_price"
)

// PriceEstimateRequest HTTP request model
type PriceEstimateRequest struct {
	BoardCount int             `json:"boardCount"`
	Extras     []SelectedExtra `json:"extras,omitempty"`
}

// SelectedExtra выбранная дополнительная услуга
type SelectedExtra struct {
	Code  string `json:"code"`
	Count int    `json:"count,omitempty"` // 0 трактуется как 1
}

// PriceEstimateResponse HTTP response model
type PriceEstimateResponse struct {
	Enabled     bool       `json:"enabled"`
	Band        *PriceBand `json:"band,omitempty"`
	SampleCount int        `json:"sampleCount"`
}

// PriceBand оценочный диапазон стоимости
type PriceBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PriceEstimateRequest) ToUseCaseRequest() *estimatePrice.Request {
	extras := make([]domain.SelectedExtra, len(r.Extras))
	for i, extra := range r.Extras {
		count := extra.Count
		if count <= 0 {
			count = 1
		}
		extras[i] = domain.SelectedExtra{
			Code:  extra.Code,
			Count: count,
		}
	}

	return &estimatePrice.Request{
		BoardCount: r.BoardCount,
		Extras:     extras,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *estimatePrice.Response) *PriceEstimateResponse {
	out := &PriceEstimateResponse{
		Enabled:     resp.Enabled,
		SampleCount: resp.SampleCount,
	}

	if resp.Band != nil {
		out.Band = &PriceBand{
			Min: resp.Band.Min,
			Max: resp.Band.Max,
		}
	}

	return out
}
