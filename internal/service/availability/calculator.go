package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// Calculator считает доступные половины дня с остатком вместимости
type Calculator struct {
	resolver ScheduleResolver
	counters CounterReader
}

// NewCalculator создает новый экземпляр калькулятора
func NewCalculator(resolver ScheduleResolver, counters CounterReader) *Calculator {
	return &Calculator{
		resolver: resolver,
		counters: counters,
	}
}

// GetAvailability возвращает доступность по датам [start, end] в хронологическом порядке
// Даты без бронируемых половин дня в результат не попадают.
// onlyAvailable=true дополнительно убирает половины дня с исчерпанной вместимостью
func (c *Calculator) GetAvailability(ctx context.Context, companyID int64, start, end time.Time, onlyAvailable bool) ([]domain.DayAvailability, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	schedules, err := c.resolver.ResolveRange(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - resolve schedule: %v", ErrInternal, err)
	}

	// Счётчики нужны, только если хоть что-то бронируемо
	var counters []domain.SlotCounter
	if anyBookable(schedules) {
		counters, err = c.counters.ListRange(ctx, companyID, start, end)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAvailability - list counters: %v", ErrInternal, err)
		}
	}

	return Calculate(schedules, counters, onlyAvailable), nil
}

// Load возвращает сохранённые счётчики периода вместе с текущей вместимостью
func (c *Calculator) Load(ctx context.Context, companyID int64, start, end time.Time) ([]domain.SlotLoad, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	schedules, err := c.resolver.ResolveRange(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - resolve schedule: %v", ErrInternal, err)
	}

	counters, err := c.counters.ListRange(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - list counters: %v", ErrInternal, err)
	}

	byDate := make(map[time.Time]domain.EffectiveDaySchedule, len(schedules))
	for _, s := range schedules {
		byDate[s.Date] = s
	}

	loads := make([]domain.SlotLoad, 0, len(counters))
	for _, counter := range counters {
		load := domain.SlotLoad{SlotCounter: counter}
		if s, ok := byDate[domain.DateOnly(counter.Date)]; ok {
			hs := s.HalfDay(counter.HalfDay)
			load.MaxCapacity = hs.MaxCapacity
			load.Bookable = hs.Bookable()
		}
		loads = append(loads, load)
	}

	return loads, nil
}

// Calculate собирает доступность из итогового расписания и счётчиков, без обращения к хранилищам
func Calculate(schedules []domain.EffectiveDaySchedule, counters []domain.SlotCounter, onlyAvailable bool) []domain.DayAvailability {
	counts := make(map[string]int, len(counters))
	for _, c := range counters {
		counts[domain.NewSlotKey(c.CompanyID, c.Date, c.HalfDay).String()] = c.CurrentCount
	}

	result := make([]domain.DayAvailability, 0, len(schedules))
	for _, s := range schedules {
		day := domain.DayAvailability{Date: domain.DateOnly(s.Date), Reason: s.Reason}

		for _, h := range domain.HalfDays {
			hs := s.HalfDay(h)
			if !hs.Bookable() {
				continue
			}

			current := counts[domain.NewSlotKey(s.CompanyID, s.Date, h).String()]
			remaining := hs.MaxCapacity - current
			if remaining < 0 {
				remaining = 0
			}

			slot := domain.HalfDayAvailability{
				HalfDay:      h,
				Window:       *hs.Window,
				MaxCapacity:  hs.MaxCapacity,
				CurrentCount: current,
				Remaining:    remaining,
				IsAvailable:  remaining > 0,
			}
			if onlyAvailable && !slot.IsAvailable {
				continue
			}
			day.Slots = append(day.Slots, slot)
		}

		if len(day.Slots) > 0 {
			result = append(result, day)
		}
	}

	domain.SortDayAvailabilities(result)
	return result
}

func anyBookable(schedules []domain.EffectiveDaySchedule) bool {
	for _, s := range schedules {
		if s.HasBookable() {
			return true
		}
	}
	return false
}
