package companyservice

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("company not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("companyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("companyservice client: invalid response")

	// ErrServiceDegraded возвращается, когда CompanyService недоступен
	// Чтение расписания можно продолжить без проверки компании, изменения - нельзя
	ErrServiceDegraded = errors.New("companyservice unavailable: graceful degradation applied")
)
