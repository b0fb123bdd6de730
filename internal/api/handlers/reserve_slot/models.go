package reserve_slot

import (
	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	reserveSlot "github.com/m04kA/SMC-DeliverySlots/internal/usecase/reserve_slot"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	Date    string `json:"date" validate:"required"` // "2025-10-15"
	HalfDay string `json:"halfDay" validate:"required,oneof=morning afternoon"`
	OrderID string `json:"orderId" validate:"required,max=128"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	Reserved     bool   `json:"reserved"`
	CompanyID    int64  `json:"companyId"`
	Date         string `json:"date"`
	HalfDay      string `json:"halfDay"`
	OrderID      string `json:"orderId"`
	CurrentCount int    `json:"currentCount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveSlotRequest) ToUseCaseRequest(actorID, companyID int64) (*reserveSlot.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	halfDay, err := domain.ParseHalfDay(r.HalfDay)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		ActorCompanyID: actorID,
		CompanyID:      companyID,
		Date:           date,
		HalfDay:        halfDay,
		OrderID:        r.OrderID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *ReservationResponse {
	return &ReservationResponse{
		Reserved:     resp.Reserved,
		CompanyID:    resp.CompanyID,
		Date:         resp.Date.Format(domain.DateFormat),
		HalfDay:      resp.HalfDay.String(),
		OrderID:      resp.OrderID,
		CurrentCount: resp.CurrentCount,
	}
}
