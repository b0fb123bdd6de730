package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DeliverySlots/internal/api/handlers"
	"github.com/m04kA/SMC-DeliverySlots/internal/api/middleware"
	reserveSlot "github.com/m04kA/SMC-DeliverySlots/internal/usecase/reserve_slot"
)

const (
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCompanyID   = "не указана компания, выполняющая запрос"
	msgCompanyNotFound    = "компания не найдена"
	msgSlotNotAvailable   = "половина дня недоступна или вместимость исчерпана"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/companies/{companyId}/delivery-slots/reservations
// 201 - зарезервировано, 409 - отказ (тело ответа то же, reserved=false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.PathInt64(r, "companyId")
	if err != nil {
		h.logger.Warn("POST /companies/{id}/delivery-slots/reservations - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	actorID, ok := middleware.GetCompanyID(r.Context())
	if !ok {
		h.logger.Warn("POST /companies/{id}/delivery-slots/reservations - Missing actor company ID")
		handlers.RespondUnauthorized(w, msgMissingCompanyID)
		return
	}

	var req ReserveSlotRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /companies/{id}/delivery-slots/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actorID, companyID)
	if err != nil {
		h.logger.Warn("POST /companies/{id}/delivery-slots/reservations - Invalid request data: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrCompanyNotFound):
			h.logger.Warn("POST /companies/{id}/delivery-slots/reservations - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /companies/{id}/delivery-slots/reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /companies/{id}/delivery-slots/reservations - Failed to reserve: company_id=%d, order_id=%s, error=%v",
				companyID, req.OrderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Reserved {
		h.logger.Info("POST /companies/{id}/delivery-slots/reservations - Rejected: company_id=%d, order_id=%s, date=%s, half_day=%s",
			companyID, req.OrderID, req.Date, req.HalfDay)
		handlers.RespondJSON(w, http.StatusConflict, FromUseCaseResponse(result))
		return
	}

	h.logger.Info("POST /companies/{id}/delivery-slots/reservations - Reserved: company_id=%d, order_id=%s, date=%s, half_day=%s",
		companyID, req.OrderID, req.Date, req.HalfDay)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
