package reserve_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// ReservationService атомарное резервирование вместимости
type ReservationService interface {
	Reserve(ctx context.Context, companyID int64, date time.Time, halfDay domain.HalfDay) (bool, error)
	Count(ctx context.Context, companyID int64, date time.Time, halfDay domain.HalfDay) (int, error)
}

// CompanyServiceClient интерфейс клиента для CompanyService
type CompanyServiceClient interface {
	CompanyExists(ctx context.Context, companyID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
