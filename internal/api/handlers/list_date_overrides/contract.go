package list_date_overrides

import (
	"context"

	"github.com/m04kA/SMC-DeliverySlots/internal/service/config/models"
)

type OverrideService interface {
	ListOverrides(ctx context.Context, req *models.ListOverridesRequest) (*models.OverrideListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
