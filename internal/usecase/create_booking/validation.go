package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Эти ошибки не ретраятся без изменения входа
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartSlotIndex < 0 {
		return fmt.Errorf("%w: startSlotIndex must be non-negative", ErrInvalidInput)
	}

	if req.SlotCount < domain.MinSlotCount {
		return fmt.Errorf("%w: slotCount must be at least %d", ErrInvalidInput, domain.MinSlotCount)
	}

	if req.StartSlotIndex+req.SlotCount > domain.TotalSlotTimes() {
		return fmt.Errorf("%w: slot range exceeds the daily slot grid", ErrInvalidInput)
	}

	switch req.Lane {
	case domain.LaneStandard, domain.LaneAcute, "":
	default:
		return fmt.Errorf("%w: unknown lane %q", ErrInvalidInput, req.Lane)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerEmail) == "" || !strings.Contains(req.CustomerEmail, "@") {
		return fmt.Errorf("%w: customerEmail is invalid", ErrInvalidInput)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	if req.ClientRequestID != nil {
		id := strings.TrimSpace(*req.ClientRequestID)
		if id == "" || len(id) > domain.MaxClientRequestLen {
			return fmt.Errorf("%w: clientRequestId is invalid", ErrInvalidInput)
		}
	}

	return nil
}

// validateDateNotInPast проверяет, что дата бронирования не в прошлом
func validateDateNotInPast(date, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// findConflict ищет активное бронирование, пересекающее запрошенный диапазон
func findConflict(bookings []*domain.Booking, startIndex, slotCount int) *domain.Booking {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.OverlapsRange(startIndex, slotCount) {
			return b
		}
	}
	return nil
}
