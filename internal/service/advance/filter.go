package advance

import (
	"time"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// Filter отсекает ближайшие половины дня, которые уже нельзя забронировать
// Работает по всей последовательности половин дня сразу, независимо от вместимости отдельных дней
type Filter struct {
	afternoonStartHour int
}

// NewFilter создает фильтр; afternoonStartHour - час, с которого текущей считается вторая половина дня
func NewFilter(afternoonStartHour int) *Filter {
	if afternoonStartHour <= 0 || afternoonStartHour > 23 {
		afternoonStartHour = domain.DefaultAfternoonStartHour
	}
	return &Filter{afternoonStartHour: afternoonStartHour}
}

// CurrentHalfDay половина дня, к которой относится момент now (в его часовом поясе)
func (f *Filter) CurrentHalfDay(now time.Time) domain.HalfDay {
	if now.Hour() < f.afternoonStartHour {
		return domain.Morning
	}
	return domain.Afternoon
}

type entry struct {
	date   time.Time
	reason *string
	slot   domain.HalfDayAvailability
}

// Apply возвращает половины дня, начиная с позиции текущей половины дня плюс minAdvanceSlots
//
// Если текущей половины дня нет во входных данных (выключена, отфильтрована или
// now вне запрошенного периода), отсчёт ведётся от начала последовательности.
// Вход не изменяется
func (f *Filter) Apply(days []domain.DayAvailability, minAdvanceSlots int, now time.Time) []domain.DayAvailability {
	if minAdvanceSlots < 0 {
		minAdvanceSlots = 0
	}

	sorted := make([]domain.DayAvailability, len(days))
	for i, d := range days {
		sorted[i] = domain.DayAvailability{
			Date:   domain.DateOnly(d.Date),
			Slots:  append([]domain.HalfDayAvailability(nil), d.Slots...),
			Reason: d.Reason,
		}
	}
	domain.SortDayAvailabilities(sorted)

	flat := make([]entry, 0, domain.CountSlots(sorted))
	for _, d := range sorted {
		for _, s := range d.Slots {
			flat = append(flat, entry{date: d.Date, reason: d.Reason, slot: s})
		}
	}

	today := domain.DateOnly(now)
	current := f.CurrentHalfDay(now)

	idx := 0
	for i, e := range flat {
		if e.date.Equal(today) && e.slot.HalfDay == current {
			idx = i
			break
		}
	}

	first := idx + minAdvanceSlots
	if first >= len(flat) {
		return []domain.DayAvailability{}
	}

	return regroup(flat[first:])
}

func regroup(flat []entry) []domain.DayAvailability {
	result := make([]domain.DayAvailability, 0)
	for _, e := range flat {
		n := len(result)
		if n == 0 || !result[n-1].Date.Equal(e.date) {
			result = append(result, domain.DayAvailability{Date: e.date, Reason: e.reason})
			n++
		}
		result[n-1].Slots = append(result[n-1].Slots, e.slot)
	}
	return result
}
