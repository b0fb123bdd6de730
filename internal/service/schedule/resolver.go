package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	overrideRepo "github.com/m04kA/SMC-DeliverySlots/internal/infra/storage/override"
	scheduleRepo "github.com/m04kA/SMC-DeliverySlots/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-DeliverySlots/pkg/ptr"
)

// Resolver вычисляет итоговое расписание компании на дату из недельной конфигурации и переопределений
// Только чтение, блокировок не требует
type Resolver struct {
	weeklyRepo   WeeklyConfigRepository
	overrideRepo OverrideRepository
}

// NewResolver создает новый экземпляр резолвера
func NewResolver(weeklyRepo WeeklyConfigRepository, overrideRepo OverrideRepository) *Resolver {
	return &Resolver{
		weeklyRepo:   weeklyRepo,
		overrideRepo: overrideRepo,
	}
}

// Resolve возвращает итоговое расписание на одну дату
// Отсутствие недельной конфигурации - не ошибка: все половины дня выключены
func (r *Resolver) Resolve(ctx context.Context, companyID int64, date time.Time) (domain.EffectiveDaySchedule, error) {
	date = domain.DateOnly(date)

	cfg, err := r.weekly(ctx, companyID)
	if err != nil {
		return domain.EffectiveDaySchedule{}, err
	}
	if cfg == nil {
		return domain.ClosedDay(companyID, date), nil
	}

	override, err := r.overrideRepo.GetByDate(ctx, companyID, date)
	if err != nil && !errors.Is(err, overrideRepo.ErrOverrideNotFound) {
		return domain.EffectiveDaySchedule{}, fmt.Errorf("%w: Resolve - get override: %v", ErrInternal, err)
	}

	return Merge(companyID, date, cfg, override), nil
}

// ResolveRange возвращает расписание на каждую дату диапазона [start, end] по возрастанию
// Переопределения читаются одним запросом на весь диапазон
func (r *Resolver) ResolveRange(ctx context.Context, companyID int64, start, end time.Time) ([]domain.EffectiveDaySchedule, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	days := make([]domain.EffectiveDaySchedule, 0, domain.DaysInRange(start, end))

	cfg, err := r.weekly(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		domain.EachDate(start, end, func(date time.Time) {
			days = append(days, domain.ClosedDay(companyID, date))
		})
		return days, nil
	}

	overrides, err := r.overrideRepo.ListRange(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveRange - list overrides: %v", ErrInternal, err)
	}

	byDate := make(map[time.Time]*domain.DateOverride, len(overrides))
	for _, o := range overrides {
		byDate[domain.DateOnly(o.Date)] = o
	}

	domain.EachDate(start, end, func(date time.Time) {
		days = append(days, Merge(companyID, date, cfg, byDate[date]))
	})

	return days, nil
}

// MinAdvanceSlots минимальное количество половин дня до первой доступной (0 без конфигурации)
func (r *Resolver) MinAdvanceSlots(ctx context.Context, companyID int64) (int, error) {
	cfg, err := r.weekly(ctx, companyID)
	if err != nil || cfg == nil {
		return 0, err
	}
	return cfg.MinAdvanceSlots, nil
}

func (r *Resolver) weekly(ctx context.Context, companyID int64) (*domain.WeeklyScheduleConfig, error) {
	cfg, err := r.weeklyRepo.Get(ctx, companyID)
	if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get weekly config for company=%d: %v", ErrInternal, companyID, err)
	}
	return cfg, nil
}

// Merge применяет переопределение (может быть nil) к недельной конфигурации
//
// Приоритет вместимости: переопределение > день недели > значение по умолчанию.
// Приоритет окна: переопределение > день недели.
// С переопределением флаг enabled берётся только из него.
func Merge(companyID int64, date time.Time, cfg *domain.WeeklyScheduleConfig, override *domain.DateOverride) domain.EffectiveDaySchedule {
	date = domain.DateOnly(date)
	if cfg == nil {
		return domain.ClosedDay(companyID, date)
	}

	weekday := date.Weekday()
	day := cfg.Day(weekday)

	result := domain.EffectiveDaySchedule{
		CompanyID:  companyID,
		Date:       date,
		Overridden: override != nil,
	}
	if override != nil && override.Reason != nil {
		result.Reason = ptr.Ptr(*override.Reason)
	}

	for _, h := range domain.HalfDays {
		hs := domain.HalfDaySchedule{
			HalfDay:     h,
			Enabled:     day.Enabled,
			Window:      copyWindow(day.Window(h)),
			MaxCapacity: cfg.WeekdayCapacity(weekday, h),
		}

		if override != nil {
			hs.Enabled = override.Enabled(h)
			if w := override.Window(h); w != nil {
				hs.Window = copyWindow(w)
			}
			hs.MaxCapacity = ptr.Deref(override.Capacity(h), hs.MaxCapacity)
		}

		if h == domain.Afternoon {
			result.Afternoon = hs
		} else {
			result.Morning = hs
		}
	}

	return result
}

func copyWindow(w *domain.TimeWindow) *domain.TimeWindow {
	if w == nil {
		return nil
	}
	c := *w
	return &c
}
