package domain

import (
	"fmt"
	"time"
)

// DateOverride переопределение недельного расписания на конкретную дату
// Незаданные окна и вместимости берутся из недельной конфигурации
type DateOverride struct {
	ID                int64
	CompanyID         int64
	Date              time.Time
	MorningEnabled    bool
	AfternoonEnabled  bool
	MorningCapacity   *int
	AfternoonCapacity *int
	MorningWindow     *TimeWindow
	AfternoonWindow   *TimeWindow
	Reason            *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Enabled флаг доступности половины дня
func (o *DateOverride) Enabled(h HalfDay) bool {
	if h == Afternoon {
		return o.AfternoonEnabled
	}
	return o.MorningEnabled
}

// Capacity собственная вместимость переопределения (nil - не задана)
func (o *DateOverride) Capacity(h HalfDay) *int {
	if h == Afternoon {
		return o.AfternoonCapacity
	}
	return o.MorningCapacity
}

// Window собственное окно переопределения (nil - не задано)
func (o *DateOverride) Window(h HalfDay) *TimeWindow {
	if h == Afternoon {
		return o.AfternoonWindow
	}
	return o.MorningWindow
}

// IsClosed возвращает true, если переопределение закрывает весь день
func (o *DateOverride) IsClosed() bool {
	return !o.MorningEnabled && !o.AfternoonEnabled
}

// Validate проверяет окна, вместимости и длину причины
func (o *DateOverride) Validate() error {
	if o.Date.IsZero() {
		return fmt.Errorf("%w: override date is required", ErrInvalidSchedule)
	}
	if err := validateWindows(o.MorningWindow, o.AfternoonWindow, o.MorningCapacity, o.AfternoonCapacity); err != nil {
		return err
	}
	if o.Reason != nil && len([]rune(*o.Reason)) > MaxReasonLength {
		return fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidSchedule, MaxReasonLength)
	}
	return nil
}
