package release_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// ReservationService освобождение вместимости
type ReservationService interface {
	Release(ctx context.Context, companyID int64, date time.Time, halfDay domain.HalfDay) error
	Count(ctx context.Context, companyID int64, date time.Time, halfDay domain.HalfDay) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
