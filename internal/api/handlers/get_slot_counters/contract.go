package get_slot_counters

import (
	"context"

	getSlotCounters "github.com/m04kA/SMC-DeliverySlots/internal/usecase/get_slot_counters"
)

type GetSlotCountersUseCase interface {
	Execute(ctx context.Context, req *getSlotCounters.Request) (*getSlotCounters.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
