package release_slot

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// UseCase use case освобождения половины дня при отмене заказа
// Компания и расписание не проверяются: отмена должна проходить всегда
type UseCase struct {
	reservations ReservationService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservations ReservationService, logger Logger) *UseCase {
	return &UseCase{
		reservations: reservations,
		logger:       logger,
	}
}

// Execute выполняет use case освобождения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReleaseSlot: order=%s, company=%d, date=%s, halfDay=%s, actor=%d",
		req.OrderID, req.CompanyID, req.Date.Format(domain.DateFormat), req.HalfDay, req.ActorCompanyID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReleaseSlot: validation failed: %v", err)
		return nil, err
	}

	if err := uc.reservations.Release(ctx, req.CompanyID, req.Date, req.HalfDay); err != nil {
		uc.logger.Error("ReleaseSlot: order=%s: failed to release: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: failed to release: %v", ErrInternal, err)
	}

	resp := &Response{
		CompanyID: req.CompanyID,
		Date:      domain.DateOnly(req.Date),
		HalfDay:   req.HalfDay,
		OrderID:   req.OrderID,
	}

	if count, err := uc.reservations.Count(ctx, req.CompanyID, req.Date, req.HalfDay); err != nil {
		uc.logger.Warn("ReleaseSlot: order=%s: failed to read counter: %v", req.OrderID, err)
	} else {
		resp.CurrentCount = count
	}

	uc.logger.Info("ReleaseSlot: order=%s released, current count=%d", req.OrderID, resp.CurrentCount)
	return resp, nil
}

func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !req.HalfDay.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidHalfDay)
	}
	if req.OrderID == "" || len(req.OrderID) > domain.MaxOrderIDLength {
		return fmt.Errorf("%w: orderId must be 1..%d characters", ErrInvalidInput, domain.MaxOrderIDLength)
	}
	return nil
}
