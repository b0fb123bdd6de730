package get_available_slots

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена или неактивна
	ErrCompanyNotFound = errors.New("company not found")

	// ErrInvalidDateRange возвращается, если конец периода раньше начала
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrDateRangeTooLarge возвращается, если период длиннее допустимого
	ErrDateRangeTooLarge = errors.New("date range is too large")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
