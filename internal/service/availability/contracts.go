package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// ScheduleResolver итоговое расписание по датам
type ScheduleResolver interface {
	ResolveRange(ctx context.Context, companyID int64, start, end time.Time) ([]domain.EffectiveDaySchedule, error)
}

// CounterReader пакетное чтение счётчиков слотов
type CounterReader interface {
	ListRange(ctx context.Context, companyID int64, start, end time.Time) ([]domain.SlotCounter, error)
}
