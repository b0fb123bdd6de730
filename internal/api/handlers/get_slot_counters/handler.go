package get_slot_counters

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DeliverySlots/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlots/internal/api/middleware"
	getSlotCounters "github.com/m04kA/SMC-DeliverySlots/internal/usecase/get_slot_counters"
)

const (
	msgInvalidCompanyID  = "некорректный ID компании"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingCompanyID  = "не указана компания, выполняющая запрос"
	msgInvalidDateRange  = "дата окончания раньше даты начала"
	msgDateRangeTooLarge = "слишком большой период"
	msgCompanyNotFound   = "компания не найдена"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	useCase GetSlotCountersUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotCountersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/slot-counters
// Query params: from, to (обязательные, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/slot-counters - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	actorID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("GET /companies/{id}/slot-counters - Missing actor company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	from, to, err := handlers.QueryDateRange(r)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/slot-counters - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlotCounters.Request{
		ActorCompanyID: actorID,
		CompanyID:      companyID,
		From:           from,
		To:             to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlotCounters.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/slot-counters - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, getSlotCounters.ErrAccessDenied):
			h.logger.Warn("GET /companies/{id}/slot-counters - Access denied: company_id=%d, actor_id=%d",
				companyID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, getSlotCounters.ErrInvalidDateRange):
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getSlotCounters.ErrDateRangeTooLarge):
			handlers.RespondBadRequest(w, msgDateRangeTooLarge)

		case errors.Is(err, getSlotCounters.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /companies/{id}/slot-counters - Failed to load counters: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/slot-counters - Returned %d counters: company_id=%d", len(result.Slots), companyID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
