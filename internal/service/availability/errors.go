package availability

import "errors"

var (
	// ErrInvalidRange возвращается, если конец периода раньше начала
	ErrInvalidRange = errors.New("availability: end date is before start date")

	// ErrInternal возвращается при ошибках резолвера или хранилища счётчиков
	ErrInternal = errors.New("availability: internal error")
)
