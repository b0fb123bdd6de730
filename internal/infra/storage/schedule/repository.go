package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	"github.com/m04kA/SMC-DeliverySlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-DeliverySlots/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DeliverySlots/pkg/types"
)

// Repository репозиторий недельных конфигураций доставки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает недельную конфигурацию компании вместе с расписанием по дням недели
// Дни, для которых нет строки в weekly_schedule_days, считаются выключенными
func (r *Repository) Get(ctx context.Context, companyID int64) (*domain.WeeklyScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"company_id",
		"min_advance_slots",
		"default_morning_capacity",
		"default_afternoon_capacity",
		"created_at",
		"updated_at",
	).
		From("weekly_schedule_configs").
		Where(squirrel.Eq{"company_id": companyID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.WeeklyScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.CompanyID,
		&cfg.MinAdvanceSlots,
		&cfg.DefaultMorningCapacity,
		&cfg.DefaultAfternoonCapacity,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	days, err := r.getDays(ctx, executor, companyID)
	if err != nil {
		return nil, err
	}
	cfg.Days = days

	return &cfg, nil
}

func (r *Repository) getDays(ctx context.Context, executor DBExecutor, companyID int64) ([7]domain.DaySchedule, error) {
	var days [7]domain.DaySchedule

	query, args, err := psqlbuilder.Select(
		"weekday",
		"enabled",
		"morning_start",
		"morning_end",
		"afternoon_start",
		"afternoon_end",
		"morning_capacity",
		"afternoon_capacity",
	).
		From("weekly_schedule_days").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return days, fmt.Errorf("%w: getDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return days, fmt.Errorf("%w: getDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			weekday                      int
			day                          domain.DaySchedule
			morningStart, morningEnd     types.TimeString
			afternoonStart, afternoonEnd types.TimeString
			morningCap, afternoonCap     sql.NullInt64
		)

		if err := rows.Scan(
			&weekday,
			&day.Enabled,
			&morningStart,
			&morningEnd,
			&afternoonStart,
			&afternoonEnd,
			&morningCap,
			&afternoonCap,
		); err != nil {
			return days, fmt.Errorf("%w: getDays - scan row: %v", ErrScanRow, err)
		}

		if weekday < int(time.Sunday) || weekday > int(time.Saturday) {
			continue
		}

		day.Morning = domain.WindowFromBounds(morningStart, morningEnd)
		day.Afternoon = domain.WindowFromBounds(afternoonStart, afternoonEnd)
		day.MorningCapacity = nullIntPtr(morningCap)
		day.AfternoonCapacity = nullIntPtr(afternoonCap)

		days[weekday] = day
	}

	if err := rows.Err(); err != nil {
		return days, fmt.Errorf("%w: getDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// Upsert создает или полностью заменяет недельную конфигурацию компании
// Записывает две таблицы, поэтому вызывать следует внутри транзакции (txmanager.Do)
func (r *Repository) Upsert(ctx context.Context, cfg *domain.WeeklyScheduleConfig) (*domain.WeeklyScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_schedule_configs").
		Columns(
			"company_id",
			"min_advance_slots",
			"default_morning_capacity",
			"default_afternoon_capacity",
		).
		Values(
			cfg.CompanyID,
			cfg.MinAdvanceSlots,
			cfg.DefaultMorningCapacity,
			cfg.DefaultAfternoonCapacity,
		).
		Suffix(`ON CONFLICT (company_id) DO UPDATE SET
			min_advance_slots = EXCLUDED.min_advance_slots,
			default_morning_capacity = EXCLUDED.default_morning_capacity,
			default_afternoon_capacity = EXCLUDED.default_afternoon_capacity,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	daysInsert := psqlbuilder.Insert("weekly_schedule_days").
		Columns(
			"company_id",
			"weekday",
			"enabled",
			"morning_start",
			"morning_end",
			"afternoon_start",
			"afternoon_end",
			"morning_capacity",
			"afternoon_capacity",
		)

	for wd, day := range cfg.Days {
		morningStart, morningEnd := day.Morning.Bounds()
		afternoonStart, afternoonEnd := day.Afternoon.Bounds()
		daysInsert = daysInsert.Values(
			cfg.CompanyID,
			wd,
			day.Enabled,
			morningStart,
			morningEnd,
			afternoonStart,
			afternoonEnd,
			day.MorningCapacity,
			day.AfternoonCapacity,
		)
	}

	query, args, err = daysInsert.
		Suffix(`ON CONFLICT (company_id, weekday) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			morning_start = EXCLUDED.morning_start,
			morning_end = EXCLUDED.morning_end,
			afternoon_start = EXCLUDED.afternoon_start,
			afternoon_end = EXCLUDED.afternoon_end,
			morning_capacity = EXCLUDED.morning_capacity,
			afternoon_capacity = EXCLUDED.afternoon_capacity`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build days insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute days insert: %v", ErrExecQuery, err)
	}

	saved := *cfg
	saved.CreatedAt = createdAt.Time
	saved.UpdatedAt = updatedAt.Time

	return &saved, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
