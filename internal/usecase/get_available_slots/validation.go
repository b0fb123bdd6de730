package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// validateRequest проверяет входные данные запроса
func validateRequest(req *Request, maxRangeDays int) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: company ID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: both dates are required", ErrInvalidInput)
	}

	if domain.DateOnly(req.To).Before(domain.DateOnly(req.From)) {
		return ErrInvalidDateRange
	}

	if days := domain.DaysInRange(req.From, req.To); days > maxRangeDays {
		return fmt.Errorf("%w: %d days, max %d", ErrDateRangeTooLarge, days, maxRangeDays)
	}

	return nil
}
