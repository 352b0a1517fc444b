package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/auditlog"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/leadintake"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByManageToken(ctx context.Context, token string) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
	SetAcceptedPrice(ctx context.Context, id int64, priceMin, priceMax float64) error
}

// LeadIntakeClient интерфейс клиента сервиса приёма заявок
type LeadIntakeClient interface {
	SubmitRescheduleRequest(ctx context.Context, lead *leadintake.RescheduleLead) error
}

// AuditRecorder интерфейс для фонового аудита операций
type AuditRecorder interface {
	RecordAsync(event *auditlog.Event)
}

// TimeProvider источник текущего времени, выделен для тестируемости
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider системные часы
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time { return time.Now() }

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
