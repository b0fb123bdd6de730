package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/pkg/ptr"
	"github.com/m04kA/SMC-DeliverySlots/pkg/types"
)

var (
	// ErrInvalidWindow возвращается при некорректном временном окне
	ErrInvalidWindow = errors.New("domain: invalid time window")

	// ErrInvalidCapacity возвращается при отрицательной или слишком большой вместимости
	ErrInvalidCapacity = errors.New("domain: invalid capacity")

	// ErrInvalidSchedule возвращается при нарушении инвариантов расписания
	ErrInvalidSchedule = errors.New("domain: invalid schedule")
)

// TimeWindow временное окно доставки внутри дня
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate проверяет формат и то, что начало раньше конца
func (w TimeWindow) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidWindow, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidWindow, err)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// WindowFromBounds собирает окно из колонок БД; пустые границы означают отсутствие окна
func WindowFromBounds(start, end types.TimeString) *TimeWindow {
	if start.IsZero() && end.IsZero() {
		return nil
	}
	return &TimeWindow{Start: start, End: end}
}

// Bounds возвращает границы окна (пустые для nil)
func (w *TimeWindow) Bounds() (types.TimeString, types.TimeString) {
	if w == nil {
		return "", ""
	}
	return w.Start, w.End
}

// DaySchedule недельное расписание одного дня недели
type DaySchedule struct {
	Enabled   bool
	Morning   *TimeWindow
	Afternoon *TimeWindow

	// Вместимость для конкретного дня недели; nil - используется значение по умолчанию из конфигурации
	MorningCapacity   *int
	AfternoonCapacity *int
}

// Window возвращает окно для половины дня (nil, если окно не задано)
func (d DaySchedule) Window(h HalfDay) *TimeWindow {
	if h == Afternoon {
		return d.Afternoon
	}
	return d.Morning
}

// Capacity возвращает собственную вместимость дня недели для половины дня
func (d DaySchedule) Capacity(h HalfDay) *int {
	if h == Afternoon {
		return d.AfternoonCapacity
	}
	return d.MorningCapacity
}

// WeeklyScheduleConfig недельная конфигурация доставки компании
// Days индексируется time.Weekday (0 = воскресенье)
type WeeklyScheduleConfig struct {
	CompanyID                int64
	MinAdvanceSlots          int
	DefaultMorningCapacity   int
	DefaultAfternoonCapacity int
	Days                     [7]DaySchedule
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// Day возвращает расписание для дня недели
func (c *WeeklyScheduleConfig) Day(wd time.Weekday) DaySchedule {
	if wd < time.Sunday || wd > time.Saturday {
		return DaySchedule{}
	}
	return c.Days[wd]
}

// DefaultCapacity вместимость по умолчанию для половины дня
func (c *WeeklyScheduleConfig) DefaultCapacity(h HalfDay) int {
	if h == Afternoon {
		return c.DefaultAfternoonCapacity
	}
	return c.DefaultMorningCapacity
}

// WeekdayCapacity вместимость половины дня для дня недели с учётом значения по умолчанию
func (c *WeeklyScheduleConfig) WeekdayCapacity(wd time.Weekday, h HalfDay) int {
	return ptr.Deref(c.Day(wd).Capacity(h), c.DefaultCapacity(h))
}

// Validate проверяет инварианты конфигурации
func (c *WeeklyScheduleConfig) Validate() error {
	if c.MinAdvanceSlots < MinAdvanceSlots || c.MinAdvanceSlots > MaxAdvanceSlots {
		return fmt.Errorf("%w: minAdvanceSlots must be between %d and %d", ErrInvalidSchedule, MinAdvanceSlots, MaxAdvanceSlots)
	}
	if err := validateCapacity(c.DefaultMorningCapacity); err != nil {
		return fmt.Errorf("%w: defaultMorningCapacity", err)
	}
	if err := validateCapacity(c.DefaultAfternoonCapacity); err != nil {
		return fmt.Errorf("%w: defaultAfternoonCapacity", err)
	}

	for wd, day := range c.Days {
		if err := validateDay(day); err != nil {
			return fmt.Errorf("%w (%s)", err, time.Weekday(wd))
		}
	}
	return nil
}

func validateDay(day DaySchedule) error {
	if day.Enabled && day.Morning == nil && day.Afternoon == nil {
		return fmt.Errorf("%w: enabled day must have at least one window", ErrInvalidSchedule)
	}
	return validateWindows(day.Morning, day.Afternoon, day.MorningCapacity, day.AfternoonCapacity)
}

// validateWindows общая проверка окон и вместимостей для дня недели и переопределения
func validateWindows(morning, afternoon *TimeWindow, morningCap, afternoonCap *int) error {
	if morning != nil {
		if err := morning.Validate(); err != nil {
			return fmt.Errorf("morning: %w", err)
		}
	}
	if afternoon != nil {
		if err := afternoon.Validate(); err != nil {
			return fmt.Errorf("afternoon: %w", err)
		}
	}
	if morning != nil && afternoon != nil && afternoon.Start.IsBefore(morning.End) {
		return fmt.Errorf("%w: afternoon window must start after morning window ends", ErrInvalidWindow)
	}
	if morningCap != nil {
		if err := validateCapacity(*morningCap); err != nil {
			return fmt.Errorf("%w: morning", err)
		}
	}
	if afternoonCap != nil {
		if err := validateCapacity(*afternoonCap); err != nil {
			return fmt.Errorf("%w: afternoon", err)
		}
	}
	return nil
}

func validateCapacity(v int) error {
	if v < MinCapacity || v > MaxCapacity {
		return fmt.Errorf("%w: %d is out of [%d, %d]", ErrInvalidCapacity, v, MinCapacity, MaxCapacity)
	}
	return nil
}
