package release_slot

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// Request модель запроса на освобождение половины дня при отмене заказа
type Request struct {
	ActorCompanyID int64
	CompanyID      int64
	Date           time.Time
	HalfDay        domain.HalfDay
	OrderID        string
}

// Response результат освобождения
type Response struct {
	CompanyID    int64
	Date         time.Time
	HalfDay      domain.HalfDay
	OrderID      string
	CurrentCount int
}
