package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// UpsertOverrideRequest запрос на установку количества открытых слотов на дату
// openSlotsCount = 0 полностью закрывает день
type UpsertOverrideRequest struct {
	OpenSlotsCount int     `json:"openSlotsCount"`
	Note           *string `json:"note,omitempty"`
}

// ToDomainOverride конвертирует request в domain модель
func (r *UpsertOverrideRequest) ToDomainOverride(date time.Time) *domain.DayOverride {
	return &domain.DayOverride{
		Date:           date,
		OpenSlotsCount: r.OpenSlotsCount,
		Note:           r.Note,
	}
}

// Response модели

// OverrideResponse ответ с данными переопределения
type OverrideResponse struct {
	Date           string    `json:"date"` // "2026-01-15"
	OpenSlotsCount int       `json:"openSlotsCount"`
	Note           *string   `json:"note,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(o *domain.DayOverride) *OverrideResponse {
	if o == nil {
		return nil
	}

	return &OverrideResponse{
		Date:           o.Date.Format(domain.DateFormat),
		OpenSlotsCount: o.OpenSlotsCount,
		Note:           o.Note,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
