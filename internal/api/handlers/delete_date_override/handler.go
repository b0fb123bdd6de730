package delete_date_override

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
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingCompanyID = "не указана компания, выполняющая запрос"
	msgNotFound         = "переопределение на дату не найдено"
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

// Handle DELETE /api/v1/companies/{companyId}/delivery-overrides/{date}
// После удаления дата снова следует недельному расписанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("DELETE /companies/{id}/delivery-overrides/{date} - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	date, err := handlers.PathDate(r, "date")
	if err != nil {
		h.logger.Warn("DELETE /companies/{id}/delivery-overrides/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	actorID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /companies/{id}/delivery-overrides/{date} - Missing actor company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	err = h.service.DeleteOverride(r.Context(), &models.DeleteOverrideRequest{
		ActorCompanyID: actorID,
		CompanyID:      companyID,
		Date:           date,
	})
	if err != nil {
		switch {
		case errors.Is(err, config.ErrOverrideNotFound):
			h.logger.Warn("DELETE /companies/{id}/delivery-overrides/{date} - Not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, config.ErrCompanyNotFound):
			h.logger.Warn("DELETE /companies/{id}/delivery-overrides/{date} - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("DELETE /companies/{id}/delivery-overrides/{date} - Access denied: company_id=%d, actor_id=%d",
				companyID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /companies/{id}/delivery-overrides/{date} - Failed to delete override: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /companies/{id}/delivery-overrides/{date} - Override deleted successfully: company_id=%d", companyID)
	w.WriteHeader(http.StatusNoContent)
}
