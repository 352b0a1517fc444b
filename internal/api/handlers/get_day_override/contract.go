package get_day_override

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/overrides/models"
)

type OverrideService interface {
	GetByDate(ctx context.Context, date time.Time) (*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
