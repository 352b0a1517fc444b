package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// Service сервис для работы с настройками прайс-эстимейтора
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get получает действующие настройки эстимейтора
// Если настройки не сохранены, возвращает встроенные дефолты
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching estimator settings")

	stored, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Get: no stored settings, returning defaults")
			defaults := domain.DefaultEstimatorSettings()
			return models.FromDomainSettings(&defaults), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	effective := *stored
	effective.ApplyDefaults()

	return models.FromDomainSettings(&effective), nil
}

// Update сохраняет настройки эстимейтора
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating estimator settings, enabled=%t, minSamples=%d, interval=%.2f, range=[%.2f, %.2f]",
		req.Enabled, req.MinSamples, req.Interval, req.MinPrice, req.MaxPrice)

	if err := validateSettings(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	stored, err := s.settingsRepo.Upsert(ctx, req.ToDomainSettings())
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully stored estimator settings")
	return models.FromDomainSettings(stored), nil
}

// validateSettings валидирует параметры эстимейтора
func validateSettings(req *models.UpdateSettingsRequest) error {
	if req.MinSamples < 1 {
		return fmt.Errorf("%w: minSamples must be at least 1", ErrInvalidInput)
	}
	if req.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive", ErrInvalidInput)
	}
	if req.MinPrice <= 0 {
		return fmt.Errorf("%w: minPrice must be positive", ErrInvalidInput)
	}
	if req.MaxPrice < req.MinPrice {
		return fmt.Errorf("%w: maxPrice must not be less than minPrice", ErrInvalidInput)
	}
	return nil
}
