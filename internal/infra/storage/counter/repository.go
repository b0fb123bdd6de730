package counter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	"github.com/m04kA/SMC-DeliverySlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-DeliverySlots/pkg/psqlbuilder"
)

// Repository счётчики слотов в PostgreSQL
// Атомарность резервирования обеспечивается одним условным INSERT ... ON CONFLICT DO UPDATE
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCount возвращает текущее количество резервирований (0, если счётчика ещё нет)
func (r *Repository) GetCount(ctx context.Context, key domain.SlotKey) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("current_count").
		From("slot_counters").
		Where(keyCondition(key)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: GetCount - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetCount - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListRange возвращает существующие счётчики компании за период [start, end]
func (r *Repository) ListRange(ctx context.Context, companyID int64, start, end time.Time) ([]domain.SlotCounter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"company_id",
		"slot_date",
		"half_day",
		"current_count",
		"updated_at",
	).
		From("slot_counters").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.GtOrEq{"slot_date": dateParam(start)}).
		Where(squirrel.LtOrEq{"slot_date": dateParam(end)}).
		OrderBy("slot_date ASC", "half_day DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counters := make([]domain.SlotCounter, 0)
	for rows.Next() {
		var (
			c         domain.SlotCounter
			date      time.Time
			halfDay   string
			updatedAt sql.NullTime
		)

		if err := rows.Scan(&c.CompanyID, &date, &halfDay, &c.CurrentCount, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListRange - scan row: %v", ErrScanRow, err)
		}

		c.Date = domain.DateOnly(date)
		c.HalfDay = domain.HalfDay(halfDay)
		c.UpdatedAt = updatedAt.Time

		counters = append(counters, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRange - rows error: %v", ErrScanRow, err)
	}

	return counters, nil
}

// ConditionalIncrement увеличивает счётчик, только если он меньше maxCapacity
// Строка создаётся при первом успешном резервировании.
// Возвращает false, если вместимость исчерпана
func (r *Repository) ConditionalIncrement(ctx context.Context, key domain.SlotKey, maxCapacity int) (bool, error) {
	if maxCapacity <= 0 {
		return false, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_counters").
		Columns("company_id", "slot_date", "half_day", "current_count").
		Values(key.CompanyID, dateParam(key.Date), string(key.HalfDay), 1).
		Suffix(`ON CONFLICT (company_id, slot_date, half_day) DO UPDATE SET
			current_count = slot_counters.current_count + 1,
			updated_at = NOW()
		WHERE slot_counters.current_count < ?
		RETURNING current_count`, maxCapacity).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ConditionalIncrement - build upsert query: %v", ErrBuildQuery, err)
	}

	var count int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&count)

	// WHERE отсёк обновление - строка не возвращается
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ConditionalIncrement - execute upsert: %v", ErrExecQuery, err)
	}

	return true, nil
}

// Decrement уменьшает счётчик, не опускаясь ниже нуля
// Отсутствующий счётчик не создаётся
func (r *Repository) Decrement(ctx context.Context, key domain.SlotKey) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_counters").
		Set("current_count", squirrel.Expr("GREATEST(current_count - 1, 0)")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(keyCondition(key)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Decrement - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Decrement - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func keyCondition(key domain.SlotKey) squirrel.Eq {
	return squirrel.Eq{
		"company_id": key.CompanyID,
		"slot_date":  dateParam(key.Date),
		"half_day":   string(key.HalfDay),
	}
}

// dateParam передаёт дату строкой, чтобы часовой пояс сессии не сдвигал её
func dateParam(t time.Time) string {
	return domain.DateOnly(t).Format(domain.DateFormat)
}
