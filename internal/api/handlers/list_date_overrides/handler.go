package list_date_overrides

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DeliverySlots/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlots/internal/api/middleware"
	"github.com/m04kA/SMC-DeliverySlots/internal/service/config"
	"github.com/m04kA/SMC-DeliverySlots/internal/service/config/models"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgMissingCompanyID = "не указана компания, выполняющая запрос"
	msgInvalidParams    = "некорректные параметры запроса"
	msgCompanyNotFound  = "компания не найдена"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service OverrideService
	logger  Logger
}

func NewHandler(service OverrideService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/delivery-overrides
// Query params: from, to (обязательные, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/delivery-overrides - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	actorID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("GET /companies/{id}/delivery-overrides - Missing actor company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	from, to, err := handlers.QueryDateRange(r)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/delivery-overrides - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListOverrides(r.Context(), &models.ListOverridesRequest{
		ActorCompanyID: actorID,
		CompanyID:      companyID,
		From:           from,
		To:             to,
	})
	if err != nil {
		switch {
		case errors.Is(err, config.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/delivery-overrides - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("GET /companies/{id}/delivery-overrides - Access denied: company_id=%d, actor_id=%d",
				companyID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/delivery-overrides - Invalid range: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /companies/{id}/delivery-overrides - Failed to list overrides: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/delivery-overrides - Overrides retrieved successfully: company_id=%d, count=%d",
		companyID, len(result.Overrides))
	handlers.RespondJSON(w, http.StatusOK, result.Overrides)
}
