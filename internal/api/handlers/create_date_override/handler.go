package create_date_override

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DeliverySlots/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlots/internal/api/middleware"
	"github.com/m04kA/SMC-DeliverySlots/internal/service/config"
	"github.com/m04kA/SMC-DeliverySlots/internal/service/config/models"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCompanyID   = "не указана компания, выполняющая запрос"
	msgAlreadyExists      = "переопределение на эту дату уже существует"
	msgCompanyNotFound    = "компания не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные данные переопределения"
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

// Handle POST /api/v1/companies/{companyId}/delivery-overrides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("POST /companies/{id}/delivery-overrides - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	actorID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("POST /companies/{id}/delivery-overrides - Missing actor company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	var req models.OverrideRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /companies/{id}/delivery-overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorCompanyID = actorID
	req.CompanyID = companyID

	result, err := h.service.CreateOverride(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrOverrideAlreadyExists):
			h.logger.Warn("POST /companies/{id}/delivery-overrides - Already exists: company_id=%d, date=%s",
				companyID, req.Date)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, config.ErrCompanyNotFound):
			h.logger.Warn("POST /companies/{id}/delivery-overrides - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("POST /companies/{id}/delivery-overrides - Access denied: company_id=%d, actor_id=%d",
				companyID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("POST /companies/{id}/delivery-overrides - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /companies/{id}/delivery-overrides - Failed to create override: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /companies/{id}/delivery-overrides - Override created successfully: id=%d, date=%s",
		result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
