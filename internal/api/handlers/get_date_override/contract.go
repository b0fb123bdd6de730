package get_date_override

import (
	"context"

	"github.com/m04kA/SMC-DeliverySlots/internal/service/config/models"
)

type OverrideService interface {
	GetOverride(ctx context.Context, req *models.GetOverrideRequest) (*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
