package get_slot_counters

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// LoadCalculator сохранённые счётчики вместе с текущей вместимостью
type LoadCalculator interface {
	Load(ctx context.Context, companyID int64, start, end time.Time) ([]domain.SlotLoad, error)
}

// CompanyServiceClient интерфейс клиента для CompanyService
type CompanyServiceClient interface {
	CanManage(ctx context.Context, actorID, targetID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
