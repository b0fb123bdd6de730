package reserve_slot

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена или неактивна
	ErrCompanyNotFound = errors.New("company not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
