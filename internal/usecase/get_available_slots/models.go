package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// Request модель запроса на получение доступных половин дня
type Request struct {
	CompanyID     int64     // ID компании
	From          time.Time // Первая дата периода (без времени)
	To            time.Time // Последняя дата периода включительно
	OnlyAvailable bool      // Убрать половины дня без свободной вместимости
}

// Response модель ответа
type Response struct {
	CompanyID       int64
	From            time.Time
	To              time.Time
	MinAdvanceSlots int                      // Сколько ближайших половин дня было пропущено
	Days            []domain.DayAvailability // Только даты, где осталась хотя бы одна половина дня
}
