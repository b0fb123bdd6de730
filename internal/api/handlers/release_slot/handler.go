package release_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DeliverySlots/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlots/internal/api/middleware"
	releaseSlot "github.com/m04kA/SMC-DeliverySlots/internal/usecase/release_slot"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCompanyID   = "не указана компания, выполняющая запрос"
)

type Handler struct {
	useCase ReleaseSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/companies/{companyId}/delivery-slots/releases
// Освобождение на нуле не ошибка: счётчик остаётся 0
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("POST /companies/{id}/delivery-slots/releases - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	actorID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("POST /companies/{id}/delivery-slots/releases - Missing actor company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	var req ReleaseSlotRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /companies/{id}/delivery-slots/releases - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actorID, companyID)
	if err != nil {
		h.logger.Warn("POST /companies/{id}/delivery-slots/releases - Invalid request data: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, releaseSlot.ErrInvalidInput):
			h.logger.Warn("POST /companies/{id}/delivery-slots/releases - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /companies/{id}/delivery-slots/releases - Failed to release: company_id=%d, order_id=%s, error=%v",
				companyID, req.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /companies/{id}/delivery-slots/releases - Released: company_id=%d, order_id=%s", companyID, req.OrderID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
