package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// WeeklyConfigRepository источник недельных конфигураций
type WeeklyConfigRepository interface {
	Get(ctx context.Context, companyID int64) (*domain.WeeklyScheduleConfig, error)
}

// OverrideRepository источник переопределений на даты
type OverrideRepository interface {
	GetByDate(ctx context.Context, companyID int64, date time.Time) (*domain.DateOverride, error)
	ListRange(ctx context.Context, companyID int64, start, end time.Time) ([]*domain.DateOverride, error)
}
