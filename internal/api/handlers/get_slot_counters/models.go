package get_slot_counters

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	getSlotCounters "github.com/m04kA/SMC-DeliverySlots/internal/usecase/get_slot_counters"
)

// SlotCountersResponse HTTP response model
type SlotCountersResponse struct {
	CompanyID int64            `json:"companyId"`
	From      string           `json:"from"`
	To        string           `json:"to"`
	Slots     []SlotCounterDTO `json:"slots"`
}

// SlotCounterDTO загрузка одной половины дня
type SlotCounterDTO struct {
	Date         string    `json:"date"`
	HalfDay      string    `json:"halfDay"`
	CurrentCount int       `json:"currentCount"`
	MaxCapacity  int       `json:"maxCapacity"`
	Bookable     bool      `json:"bookable"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotCounters.Response) *SlotCountersResponse {
	slots := make([]SlotCounterDTO, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotCounterDTO{
			Date:         s.Date.Format(domain.DateFormat),
			HalfDay:      s.HalfDay.String(),
			CurrentCount: s.CurrentCount,
			MaxCapacity:  s.MaxCapacity,
			Bookable:     s.Bookable,
			UpdatedAt:    s.UpdatedAt,
		})
	}

	return &SlotCountersResponse{
		CompanyID: resp.CompanyID,
		From:      resp.From.Format(domain.DateFormat),
		To:        resp.To.Format(domain.DateFormat),
		Slots:     slots,
	}
}
