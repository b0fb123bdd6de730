package release_slot

import (
	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	releaseSlot "github.com/m04kA/SMC-DeliverySlots/internal/usecase/release_slot"
)

// ReleaseSlotRequest HTTP request model
type ReleaseSlotRequest struct {
	Date    string `json:"date" validate:"required"`
	HalfDay string `json:"halfDay" validate:"required,oneof=morning afternoon"`
	OrderID string `json:"orderId" validate:"required,max=128"`
}

// ReleaseResponse HTTP response model
type ReleaseResponse struct {
	CompanyID    int64  `json:"companyId"`
	Date         string `json:"date"`
	HalfDay      string `json:"halfDay"`
	OrderID      string `json:"orderId"`
	CurrentCount int    `json:"currentCount"`
}

func (r *ReleaseSlotRequest) ToUseCaseRequest(actorID, companyID int64) (*releaseSlot.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	halfDay, err := domain.ParseHalfDay(r.HalfDay)
	if err != nil {
		return nil, err
	}

	return &releaseSlot.Request{
		ActorCompanyID: actorID,
		CompanyID:      companyID,
		Date:           date,
		HalfDay:        halfDay,
		OrderID:        r.OrderID,
	}, nil
}

func FromUseCaseResponse(resp *releaseSlot.Response) *ReleaseResponse {
	return &ReleaseResponse{
		CompanyID:    resp.CompanyID,
		Date:         resp.Date.Format(domain.DateFormat),
		HalfDay:      resp.HalfDay.String(),
		OrderID:      resp.OrderID,
		CurrentCount: resp.CurrentCount,
	}
}
