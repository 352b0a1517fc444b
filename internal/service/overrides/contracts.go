package overrides

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/auditlog"
)

// OverrideRepository интерфейс репозитория переопределений открытых слотов
type OverrideRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.DayOverride, error)
	Upsert(ctx context.Context, override *domain.DayOverride) (*domain.DayOverride, error)
}

// AuditRecorder интерфейс для фонового аудита операций
type AuditRecorder interface {
	RecordAsync(event *auditlog.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
