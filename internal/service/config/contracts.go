package config

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// WeeklyConfigRepository интерфейс репозитория недельных конфигураций
type WeeklyConfigRepository interface {
	Get(ctx context.Context, companyID int64) (*domain.WeeklyScheduleConfig, error)
	Upsert(ctx context.Context, cfg *domain.WeeklyScheduleConfig) (*domain.WeeklyScheduleConfig, error)
}

// OverrideRepository интерфейс репозитория переопределений на даты
type OverrideRepository interface {
	Create(ctx context.Context, o *domain.DateOverride) (*domain.DateOverride, error)
	GetByDate(ctx context.Context, companyID int64, date time.Time) (*domain.DateOverride, error)
	ListRange(ctx context.Context, companyID int64, start, end time.Time) ([]*domain.DateOverride, error)
	Update(ctx context.Context, o *domain.DateOverride) (*domain.DateOverride, error)
	Delete(ctx context.Context, companyID int64, date time.Time) error
}

// CompanyServiceClient интерфейс клиента для CompanyService
type CompanyServiceClient interface {
	CanManage(ctx context.Context, actorID, targetID int64) (bool, error)
}

// TxManager выполняет функцию в транзакции
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
