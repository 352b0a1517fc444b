package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек прайс-эстимейтора
type UpdateSettingsRequest struct {
	Enabled    bool    `json:"enabled"`
	MinSamples int     `json:"minSamples"`
	Interval   float64 `json:"interval"`
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
}

// ToDomainSettings конвертирует request в domain модель
func (r *UpdateSettingsRequest) ToDomainSettings() *domain.EstimatorSettings {
	return &domain.EstimatorSettings{
		Enabled:    r.Enabled,
		MinSamples: r.MinSamples,
		Interval:   r.Interval,
		MinPrice:   r.MinPrice,
		MaxPrice:   r.MaxPrice,
	}
}

// Response модели

// SettingsResponse ответ с действующими настройками эстимейтора
type SettingsResponse struct {
	Enabled    bool       `json:"enabled"`
	MinSamples int        `json:"minSamples"`
	Interval   float64    `json:"interval"`
	MinPrice   float64    `json:"minPrice"`
	MaxPrice   float64    `json:"maxPrice"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.EstimatorSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		Enabled:    s.Enabled,
		MinSamples: s.MinSamples,
		Interval:   s.Interval,
		MinPrice:   s.MinPrice,
		MaxPrice:   s.MaxPrice,
	}

	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
