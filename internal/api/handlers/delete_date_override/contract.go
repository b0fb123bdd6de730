package delete_date_override

import (
	"context"

	"github.com/m04kA/SMC-DeliverySlots/internal/service/config/models"
)

type OverrideService interface {
	DeleteOverride(ctx context.Context, req *models.DeleteOverrideRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
