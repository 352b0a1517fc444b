package override

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var overrideColumns = []string{
	"id",
	"override_date",
	"open_slots_count",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий переопределений количества открытых слотов на дату
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория переопределений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает переопределение на конкретную дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.DayOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("day_overrides").
		Where(squirrel.Eq{"override_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	override, err := scanOverride(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan override: %v", ErrScanRow, err)
	}

	return override, nil
}

// GetByDateRange получает переопределения за период, ключ - дата в формате YYYY-MM-DD
// Используется генератором шаблонов дней, чтобы не ходить в БД на каждую дату
func (r *Repository) GetByDateRange(ctx context.Context, from, to time.Time) (map[string]*domain.DayOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("day_overrides").
		Where(squirrel.GtOrEq{"override_date": from}).
		Where(squirrel.LtOrEq{"override_date": to}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make(map[string]*domain.DayOverride)
	for rows.Next() {
		override, err := scanOverride(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDateRange - scan row: %v", ErrScanRow, err)
		}
		overrides[override.Date.Format(domain.DateFormat)] = override
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// Upsert создает или обновляет переопределение на дату
func (r *Repository) Upsert(ctx context.Context, override *domain.DayOverride) (*domain.DayOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("day_overrides").
		Columns("override_date", "open_slots_count", "note").
		Values(override.Date, override.OpenSlotsCount, override.Note).
		Suffix(`ON CONFLICT (override_date) DO UPDATE
			SET open_slots_count = EXCLUDED.open_slots_count,
			    note = EXCLUDED.note,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return override, nil
}

func scanOverride(scan func(dest ...interface{}) error) (*domain.DayOverride, error) {
	var override domain.DayOverride
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&override.ID,
		&override.Date,
		&override.OpenSlotsCount,
		&override.Note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}
