package reserve_slot

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// Request модель запроса на резервирование половины дня под заказ
type Request struct {
	ActorCompanyID int64          // Кто вызывает (только для аудита в логах)
	CompanyID      int64          // ID компании
	Date           time.Time      // Дата доставки
	HalfDay        domain.HalfDay // Половина дня
	OrderID        string         // Внешний ID заказа, в логике не участвует
}

// Response результат резервирования
// Reserved=false - ожидаемый отказ (нет вместимости или половина дня выключена), не ошибка
type Response struct {
	Reserved     bool
	CompanyID    int64
	Date         time.Time
	HalfDay      domain.HalfDay
	OrderID      string
	CurrentCount int
}
