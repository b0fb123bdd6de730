package get_available_slots

import (
	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-DeliverySlots/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CompanyID       int64             `json:"companyId"`
	From            string            `json:"from"`
	To              string            `json:"to"`
	MinAdvanceSlots int               `json:"minAdvanceSlots"`
	Days            []DayAvailability `json:"days"`
}

// DayAvailability доступные половины дня на дату
type DayAvailability struct {
	Date   string        `json:"date"`
	Reason *string       `json:"reason,omitempty"`
	Slots  []HalfDaySlot `json:"slots"`
}

// HalfDaySlot модель половины дня
type HalfDaySlot struct {
	HalfDay      string `json:"halfDay"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	MaxCapacity  int    `json:"maxCapacity"`
	CurrentCount int    `json:"currentCount"`
	Remaining    int    `json:"remaining"`
	IsAvailable  bool   `json:"isAvailable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, d := range resp.Days {
		slots := make([]HalfDaySlot, len(d.Slots))
		for j, s := range d.Slots {
			slots[j] = HalfDaySlot{
				HalfDay:      s.HalfDay.String(),
				StartTime:    s.Window.Start.String(),
				EndTime:      s.Window.End.String(),
				MaxCapacity:  s.MaxCapacity,
				CurrentCount: s.CurrentCount,
				Remaining:    s.Remaining,
				IsAvailable:  s.IsAvailable,
			}
		}
		days[i] = DayAvailability{
			Date:   d.Date.Format(domain.DateFormat),
			Reason: d.Reason,
			Slots:  slots,
		}
	}

	return &AvailableSlotsResponse{
		CompanyID:       resp.CompanyID,
		From:            resp.From.Format(domain.DateFormat),
		To:              resp.To.Format(domain.DateFormat),
		MinAdvanceSlots: resp.MinAdvanceSlots,
		Days:            days,
	}
}
