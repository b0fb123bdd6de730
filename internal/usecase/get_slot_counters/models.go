package get_slot_counters

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// Request модель запроса загрузки счётчиков за период
type Request struct {
	ActorCompanyID int64
	CompanyID      int64
	From           time.Time
	To             time.Time
}

// Response модель ответа
type Response struct {
	CompanyID int64
	From      time.Time
	To        time.Time
	Slots     []domain.SlotLoad // Только половины дня, для которых есть сохранённый счётчик
}
