package get_company_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DeliverySlots/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlots/internal/service/config"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/delivery-config
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("GET /companies/{id}/delivery-config - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	result, err := h.service.GetWeeklyConfig(r.Context(), companyID)
	if err != nil {
		// Конфигурации нет - отдаём выключенное расписание
		if errors.Is(err, config.ErrConfigNotFound) {
			h.logger.Info("GET /companies/{id}/delivery-config - Config not found, returning defaults: company_id=%d",
				companyID)
			handlers.RespondJSON(w, http.StatusOK, GetDefaultConfigResponse(companyID))
			return
		}

		h.logger.Error("GET /companies/{id}/delivery-config - Failed to get config: company_id=%d, error=%v",
			companyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /companies/{id}/delivery-config - Config retrieved successfully: company_id=%d", companyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
