package pricesample

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository читает исторические принятые ценовые диапазоны закрытых заказов
// Только чтение: сэмплы пишутся стороной бронирований при закрытии заказа
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сэмплов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRecent получает до limit последних заказов с финализированной ценой
// Некорректные пары (инвертированные, неположительные) отфильтровывает вызывающий код
func (r *Repository) GetRecent(ctx context.Context, limit int) ([]domain.PriceSample, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("price_min", "price_max", "updated_at").
		From("bookings").
		Where(squirrel.NotEq{"price_min": nil}).
		Where(squirrel.NotEq{"price_max": nil}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRecent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecent - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	samples := make([]domain.PriceSample, 0, limit)
	for rows.Next() {
		var sample domain.PriceSample
		if err := rows.Scan(&sample.PriceMin, &sample.PriceMax, &sample.FinalizedAt); err != nil {
			return nil, fmt.Errorf("%w: GetRecent - scan row: %v", ErrScanRow, err)
		}
		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRecent - rows error: %v", ErrScanRow, err)
	}

	return samples, nil
}
