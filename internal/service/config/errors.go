package config

import "errors"

var (
	// ErrConfigNotFound возвращается, когда недельная конфигурация не найдена
	ErrConfigNotFound = errors.New("weekly config not found")

	// ErrOverrideNotFound возвращается, когда переопределение на дату не найдено
	ErrOverrideNotFound = errors.New("date override not found")

	// ErrOverrideAlreadyExists возвращается при попытке создать второе переопределение на дату
	ErrOverrideAlreadyExists = errors.New("date override already exists")

	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("company not found")

	// ErrAccessDenied возвращается, когда у компании нет прав на изменение расписания
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
