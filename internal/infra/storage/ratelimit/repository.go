package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository общий для всех инстансов сервиса счётчик запросов
// Счётчик лежит в БД: процесс-локальная map не работает при нескольких инстансах
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория лимитов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Hit атомарно инкрементирует счётчик (identity, action) в текущем окне
// и возвращает новое значение. Один запрос INSERT ... ON CONFLICT DO UPDATE,
// без отдельного чтения - корректно при конкурентных запросах
func (r *Repository) Hit(ctx context.Context, identity, action string, now time.Time, window time.Duration) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	windowStart := now.Truncate(window)

	query, args, err := psqlbuilder.Insert("rate_limits").
		Columns("identity", "action", "window_start", "hits").
		Values(identity, action, windowStart, 1).
		Suffix(`ON CONFLICT (identity, action, window_start)
			DO UPDATE SET hits = rate_limits.hits + 1
			RETURNING hits`).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: Hit - build insert query: %v", ErrBuildQuery, err)
	}

	var hits int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&hits); err != nil {
		return 0, fmt.Errorf("%w: Hit - execute insert: %v", ErrExecQuery, err)
	}

	return hits, nil
}

// CleanupBefore удаляет окна, закончившиеся до указанного момента
// Запускается периодически из main
func (r *Repository) CleanupBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("rate_limits").
		Where(squirrel.Lt{"window_start": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CleanupBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CleanupBefore - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CleanupBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}
