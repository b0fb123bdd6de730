package override

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	"github.com/m04kA/SMC-DeliverySlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-DeliverySlots/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DeliverySlots/pkg/types"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникальности
const uniqueViolation = "23505"

var overrideColumns = []string{
	"id",
	"company_id",
	"override_date",
	"morning_enabled",
	"afternoon_enabled",
	"morning_capacity",
	"afternoon_capacity",
	"morning_start",
	"morning_end",
	"afternoon_start",
	"afternoon_end",
	"reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий переопределений расписания на даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает переопределение; на одну дату компании допускается только одно
func (r *Repository) Create(ctx context.Context, o *domain.DateOverride) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	morningStart, morningEnd := o.MorningWindow.Bounds()
	afternoonStart, afternoonEnd := o.AfternoonWindow.Bounds()

	query, args, err := psqlbuilder.Insert("date_overrides").
		Columns(
			"company_id",
			"override_date",
			"morning_enabled",
			"afternoon_enabled",
			"morning_capacity",
			"afternoon_capacity",
			"morning_start",
			"morning_end",
			"afternoon_start",
			"afternoon_end",
			"reason",
		).
		Values(
			o.CompanyID,
			dateParam(o.Date),
			o.MorningEnabled,
			o.AfternoonEnabled,
			o.MorningCapacity,
			o.AfternoonCapacity,
			morningStart,
			morningEnd,
			afternoonStart,
			afternoonEnd,
			o.Reason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *o
	created.Date = domain.DateOnly(o.Date)

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &createdAt, &updatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return nil, ErrOverrideAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return &created, nil
}

// GetByDate получает переопределение компании на дату
func (r *Repository) GetByDate(ctx context.Context, companyID int64, date time.Time) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(squirrel.Eq{"company_id": companyID, "override_date": dateParam(date)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan override: %v", ErrScanRow, err)
	}

	return o, nil
}

// ListRange получает переопределения компании на даты из диапазона [start, end], по возрастанию даты
func (r *Repository) ListRange(ctx context.Context, companyID int64, start, end time.Time) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.GtOrEq{"override_date": dateParam(start)}).
		Where(squirrel.LtOrEq{"override_date": dateParam(end)}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DateOverride, 0)
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRange - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRange - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// Update полностью заменяет переопределение на дату (кроме id и created_at)
func (r *Repository) Update(ctx context.Context, o *domain.DateOverride) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	morningStart, morningEnd := o.MorningWindow.Bounds()
	afternoonStart, afternoonEnd := o.AfternoonWindow.Bounds()

	query, args, err := psqlbuilder.Update("date_overrides").
		Set("morning_enabled", o.MorningEnabled).
		Set("afternoon_enabled", o.AfternoonEnabled).
		Set("morning_capacity", o.MorningCapacity).
		Set("afternoon_capacity", o.AfternoonCapacity).
		Set("morning_start", morningStart).
		Set("morning_end", morningEnd).
		Set("afternoon_start", afternoonStart).
		Set("afternoon_end", afternoonEnd).
		Set("reason", o.Reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"company_id": o.CompanyID, "override_date": dateParam(o.Date)}).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated := *o
	updated.Date = domain.DateOnly(o.Date)

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updated.ID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	updated.CreatedAt = createdAt.Time
	updated.UpdatedAt = updatedAt.Time

	return &updated, nil
}

// Delete удаляет переопределение на дату
func (r *Repository) Delete(ctx context.Context, companyID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("date_overrides").
		Where(squirrel.Eq{"company_id": companyID, "override_date": dateParam(date)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOverride(row rowScanner) (*domain.DateOverride, error) {
	var (
		o                            domain.DateOverride
		date                         time.Time
		morningCap, afternoonCap     sql.NullInt64
		morningStart, morningEnd     types.TimeString
		afternoonStart, afternoonEnd types.TimeString
		reason                       sql.NullString
		createdAt, updatedAt         sql.NullTime
	)

	err := row.Scan(
		&o.ID,
		&o.CompanyID,
		&date,
		&o.MorningEnabled,
		&o.AfternoonEnabled,
		&morningCap,
		&afternoonCap,
		&morningStart,
		&morningEnd,
		&afternoonStart,
		&afternoonEnd,
		&reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Date = domain.DateOnly(date)
	o.MorningCapacity = nullIntPtr(morningCap)
	o.AfternoonCapacity = nullIntPtr(afternoonCap)
	o.MorningWindow = domain.WindowFromBounds(morningStart, morningEnd)
	o.AfternoonWindow = domain.WindowFromBounds(afternoonStart, afternoonEnd)
	if reason.Valid {
		o.Reason = &reason.String
	}
	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}

// dateParam передаёт дату строкой, чтобы часовой пояс сессии не сдвигал её
func dateParam(t time.Time) string {
	return domain.DateOnly(t).Format(domain.DateFormat)
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
