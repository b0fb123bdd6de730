package reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// ScheduleResolver итоговое расписание на дату; вместимость каждый раз вычисляется заново
type ScheduleResolver interface {
	Resolve(ctx context.Context, companyID int64, date time.Time) (domain.EffectiveDaySchedule, error)
}

// CounterRepository хранилище счётчиков слотов с атомарным условным увеличением
type CounterRepository interface {
	GetCount(ctx context.Context, key domain.SlotKey) (int, error)
	ConditionalIncrement(ctx context.Context, key domain.SlotKey, maxCapacity int) (bool, error)
	Decrement(ctx context.Context, key domain.SlotKey) error
}

// Metrics счётчики резервирований
type Metrics interface {
	IncReservation(halfDay, result string)
	IncRelease(halfDay string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
