package reservation

import "errors"

var (
	// ErrInvalidHalfDay возвращается при неизвестной половине дня
	ErrInvalidHalfDay = errors.New("reservation: invalid half-day")

	// ErrInternal возвращается при ошибках резолвера или хранилища
	ErrInternal = errors.New("reservation: internal error")
)
