package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// AvailabilityCalculator доступность половин дня по датам
type AvailabilityCalculator interface {
	GetAvailability(ctx context.Context, companyID int64, start, end time.Time, onlyAvailable bool) ([]domain.DayAvailability, error)
}

// AdvanceSettings источник минимального количества пропускаемых половин дня
type AdvanceSettings interface {
	MinAdvanceSlots(ctx context.Context, companyID int64) (int, error)
}

// AdvanceFilter отсекает ближайшие половины дня
type AdvanceFilter interface {
	Apply(days []domain.DayAvailability, minAdvanceSlots int, now time.Time) []domain.DayAvailability
}

// CompanyServiceClient интерфейс клиента для CompanyService
type CompanyServiceClient interface {
	CompanyExists(ctx context.Context, companyID int64) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
