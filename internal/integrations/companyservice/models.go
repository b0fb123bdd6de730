package companyservice

// Company модель компании из CompanyService
type Company struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
	// ParentID головная компания, которой разрешено управлять расписанием филиала
	ParentID *int64 `json:"parent_id,omitempty"`
}

// ErrorResponse модель ошибки от CompanyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
