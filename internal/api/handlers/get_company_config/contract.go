package get_company_config

import (
	"context"

	"github.com/m04kA/SMC-DeliverySlots/internal/service/config/models"
)

type ConfigService interface {
	GetWeeklyConfig(ctx context.Context, companyID int64) (*models.WeeklyConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
