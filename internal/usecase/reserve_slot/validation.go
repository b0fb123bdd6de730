package reserve_slot

import (
	"fmt"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// validateRequest валидирует входные данные запроса
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

	if req.OrderID == "" {
		return fmt.Errorf("%w: orderId is required", ErrInvalidInput)
	}

	if len(req.OrderID) > domain.MaxOrderIDLength {
		return fmt.Errorf("%w: orderId is longer than %d characters", ErrInvalidInput, domain.MaxOrderIDLength)
	}

	return nil
}
