package estimate_price

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UseCase use case оценки стоимости заявки
//
// Оценка консультативная: любой сбой зависимостей (настройки, сэмплы)
// деградирует к fallback-диапазону от настроенных границ. Клиентский поток
// никогда не блокируется ошибкой эстимейтора - при включённой оценке
// usecase всегда возвращает пригодный диапазон, даже на холодном старте
type UseCase struct {
	sampleRepo   SampleRepository
	settingsRepo SettingsRepository
	catalog      map[string]domain.ExtraItem
	maxSamples   int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sampleRepo SampleRepository,
	settingsRepo SettingsRepository,
	extrasCatalog []domain.ExtraItem,
	logger Logger,
) *UseCase {
	catalog := make(map[string]domain.ExtraItem, len(extrasCatalog))
	for _, item := range extrasCatalog {
		catalog[item.Code] = item
	}

	return &UseCase{
		sampleRepo:   sampleRepo,
		settingsRepo: settingsRepo,
		catalog:      catalog,
		maxSamples:   domain.DefaultMaxSamples,
		logger:       logger,
	}
}

// Execute выполняет use case оценки стоимости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных - единственный не деградирующий отказ
	if req.BoardCount < domain.MinBoardCount || req.BoardCount > domain.MaxBoardCount {
		return nil, fmt.Errorf("%w: boardCount must be in [%d, %d]",
			ErrInvalidInput, domain.MinBoardCount, domain.MaxBoardCount)
	}

	// 2. Настройки: сбой чтения деградирует к встроенным дефолтам,
	// диапазон ценнее строгости происхождения
	settings := uc.loadSettings(ctx)

	if !settings.Enabled {
		uc.logger.Info("EstimatePrice: estimation is administratively disabled")
		return &Response{Enabled: false}, nil
	}

	// 3. Исторические сэмплы: сбой чтения деградирует к пустому списку
	samples := uc.loadSamples(ctx)
	valid := filterValidSamples(samples)

	// 4. База: среднее середин принятых диапазонов либо середина
	// настроенного коридора при нехватке сэмплов (холодный старт)
	var center float64
	sampleCount := 0

	if len(valid) >= settings.MinSamples {
		center = meanMidpoint(valid)
		sampleCount = len(valid)
	} else {
		center = (settings.MinPrice + settings.MaxPrice) / 2
		uc.logger.Info("EstimatePrice: %d valid samples < %d required, using fallback midpoint",
			len(valid), settings.MinSamples)
	}

	perUnit := bandAround(center, settings.Interval, settings.MinPrice, settings.MaxPrice)

	// 5. Масштабирование на доски и добавление доп. услуг
	band := scaleAndAddExtras(perUnit, req.BoardCount, req.Extras, uc.catalog)

	uc.logger.Info("EstimatePrice: boards=%d, extras=%d, samples=%d, band=[%.2f, %.2f]",
		req.BoardCount, len(req.Extras), sampleCount, band.Min, band.Max)

	return &Response{
		Enabled:     true,
		Band:        &band,
		SampleCount: sampleCount,
	}, nil
}

func (uc *UseCase) loadSettings(ctx context.Context) domain.EstimatorSettings {
	stored, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.logger.Warn("EstimatePrice: settings unavailable, using defaults: %v", err)
		return domain.DefaultEstimatorSettings()
	}

	settings := *stored
	settings.ApplyDefaults()
	return settings
}

func (uc *UseCase) loadSamples(ctx context.Context) []domain.PriceSample {
	samples, err := uc.sampleRepo.GetRecent(ctx, uc.maxSamples)
	if err != nil {
		uc.logger.Warn("EstimatePrice: sample store unavailable, falling back: %v", err)
		return nil
	}
	return samples
}
