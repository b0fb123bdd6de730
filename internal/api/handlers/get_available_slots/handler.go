package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-DeliverySlots/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-DeliverySlots/internal/usecase/get_available_slots"
)

const (
	msgInvalidCompanyID     = "некорректный ID компании"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidOnlyAvailable = "некорректное значение onlyAvailable"
	msgInvalidDateRange     = "дата окончания раньше даты начала"
	msgDateRangeTooLarge    = "слишком большой период"
	msgCompanyNotFound      = "компания не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/delivery-slots
// Query params: from, to (required, YYYY-MM-DD), onlyAvailable (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/delivery-slots - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	from, to, err := handlers.QueryDateRange(r)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/delivery-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	onlyAvailable := false
	if v := r.URL.Query().Get("onlyAvailable"); v != "" {
		onlyAvailable, err = strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /companies/{id}/delivery-slots - Invalid onlyAvailable: %v", err)
			handlers.RespondBadRequest(w, msgInvalidOnlyAvailable)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		CompanyID:     companyID,
		From:          from,
		To:            to,
		OnlyAvailable: onlyAvailable,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/delivery-slots - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDateRange):
			h.logger.Warn("GET /companies/{id}/delivery-slots - Invalid range: company_id=%d", companyID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getAvailableSlots.ErrDateRangeTooLarge):
			h.logger.Warn("GET /companies/{id}/delivery-slots - Range too large: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, msgDateRangeTooLarge)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/delivery-slots - Invalid input: company_id=%d, error=%v", companyID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /companies/{id}/delivery-slots - Failed to get slots: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/delivery-slots - Returned %d days: company_id=%d", len(result.Days), companyID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
