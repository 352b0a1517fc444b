package estimate_price

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SampleRepository интерфейс источника исторических ценовых сэмплов
type SampleRepository interface {
	GetRecent(ctx context.Context, limit int) ([]domain.PriceSample, error)
}

// SettingsRepository интерфейс хранилища настроек эстимейтора
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.EstimatorSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
