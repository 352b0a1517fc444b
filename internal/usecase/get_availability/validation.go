package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotCount < domain.MinSlotCount {
		return fmt.Errorf("%w: slotCount must be at least %d", ErrInvalidInput, domain.MinSlotCount)
	}

	if req.DayCount < 0 || req.DayCount > domain.MaxDayCount {
		return fmt.Errorf("%w: dayCount must be in [0, %d]", ErrInvalidInput, domain.MaxDayCount)
	}

	switch req.Lane {
	case domain.LaneStandard, domain.LaneAcute, "":
	default:
		return fmt.Errorf("%w: unknown lane %q", ErrInvalidInput, req.Lane)
	}

	return nil
}
