package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Настройки хранятся одной строкой с фиксированным id
const settingsRowID = 1

// Repository репозиторий настроек прайс-эстимейтора
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущие настройки эстимейтора
// Дефолты к прочитанным значениям применяет вызывающий код через ApplyDefaults
func (r *Repository) Get(ctx context.Context) (*domain.EstimatorSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"enabled",
		"min_samples",
		"band_interval",
		"min_price",
		"max_price",
		"updated_at",
	).
		From("estimator_settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.EstimatorSettings
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.Enabled,
		&s.MinSamples,
		&s.Interval,
		&s.MinPrice,
		&s.MaxPrice,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert сохраняет настройки эстимейтора
func (r *Repository) Upsert(ctx context.Context, s *domain.EstimatorSettings) (*domain.EstimatorSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("estimator_settings").
		Columns("id", "enabled", "min_samples", "band_interval", "min_price", "max_price").
		Values(settingsRowID, s.Enabled, s.MinSamples, s.Interval, s.MinPrice, s.MaxPrice).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET enabled = EXCLUDED.enabled,
			    min_samples = EXCLUDED.min_samples,
			    band_interval = EXCLUDED.band_interval,
			    min_price = EXCLUDED.min_price,
			    max_price = EXCLUDED.max_price,
			    updated_at = NOW()
			RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	s.UpdatedAt = updatedAt.Time

	return s, nil
}
