package get_slot_counters

import "errors"

var (
	ErrCompanyNotFound   = errors.New("company not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrDateRangeTooLarge = errors.New("date range is too large")
	ErrInvalidInput      = errors.New("invalid input data")
	ErrInternal          = errors.New("usecase: internal error")
)
