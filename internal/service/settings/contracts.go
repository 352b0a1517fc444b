package settings

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек эстимейтора
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.EstimatorSettings, error)
	Upsert(ctx context.Context, s *domain.EstimatorSettings) (*domain.EstimatorSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
