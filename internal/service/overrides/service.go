package overrides

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	overrideRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/override"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/auditlog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/overrides/models"
)

// Service сервис для работы с переопределениями открытых слотов
// Переопределение на дату имеет приоритет над недельным расписанием,
// openSlotsCount = 0 полностью закрывает день
type Service struct {
	overrideRepo OverrideRepository
	audit        AuditRecorder
	logger       Logger
}

// NewService создает новый экземпляр сервиса переопределений
func NewService(
	overrideRepo OverrideRepository,
	audit AuditRecorder,
	logger Logger,
) *Service {
	return &Service{
		overrideRepo: overrideRepo,
		audit:        audit,
		logger:       logger,
	}
}

// GetByDate получает переопределение на конкретную дату
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*models.OverrideResponse, error) {
	s.logger.Info("GetByDate: fetching override for date=%s", date.Format(domain.DateFormat))

	override, err := s.overrideRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, overrideRepo.ErrOverrideNotFound) {
			s.logger.Warn("GetByDate: no override for date=%s", date.Format(domain.DateFormat))
			return nil, ErrOverrideNotFound
		}
		s.logger.Error("GetByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOverride(override), nil
}

// Upsert создает или обновляет переопределение на дату
func (s *Service) Upsert(ctx context.Context, date time.Time, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("Upsert: setting override date=%s, openSlots=%d",
		date.Format(domain.DateFormat), req.OpenSlotsCount)

	override := req.ToDomainOverride(date)
	if err := override.Validate(); err != nil {
		s.logger.Warn("Upsert: validation failed for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored, err := s.overrideRepo.Upsert(ctx, override)
	if err != nil {
		s.logger.Error("Upsert: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.audit.RecordAsync(&auditlog.Event{
		Action:  "day_override_set",
		Date:    stored.Date.Format(domain.DateFormat),
		Details: fmt.Sprintf("openSlots=%d", stored.OpenSlotsCount),
	})

	s.logger.Info("Upsert: successfully stored override date=%s, openSlots=%d",
		stored.Date.Format(domain.DateFormat), stored.OpenSlotsCount)
	return models.FromDomainOverride(stored), nil
}
