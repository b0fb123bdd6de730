package domain

import (
	"fmt"
	"sort"
	"time"
)

// SlotKey ключ счётчика вместимости (компания, дата, половина дня)
type SlotKey struct {
	CompanyID int64
	Date      time.Time
	HalfDay   HalfDay
}

// NewSlotKey создает ключ, нормализуя дату
func NewSlotKey(companyID int64, date time.Time, halfDay HalfDay) SlotKey {
	return SlotKey{CompanyID: companyID, Date: DateOnly(date), HalfDay: halfDay}
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%d:%s:%s", k.CompanyID, k.Date.Format(DateFormat), k.HalfDay)
}

// SlotCounter текущее количество резервирований слота
// Максимальная вместимость на счётчике не хранится - она каждый раз вычисляется из расписания
type SlotCounter struct {
	SlotKey
	CurrentCount int
	UpdatedAt    time.Time
}

// HalfDayAvailability доступность половины дня
type HalfDayAvailability struct {
	HalfDay      HalfDay
	Window       TimeWindow
	MaxCapacity  int
	CurrentCount int
	Remaining    int // не меньше нуля
	IsAvailable  bool
}

// DayAvailability доступные половины дня на дату (утро раньше дня)
type DayAvailability struct {
	Date   time.Time
	Slots  []HalfDayAvailability
	Reason *string
}

// SortDayAvailabilities сортирует дни по дате, а половины дня - утро перед днём
func SortDayAvailabilities(days []DayAvailability) {
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	for i := range days {
		slots := days[i].Slots
		sort.SliceStable(slots, func(a, b int) bool {
			return slots[a].HalfDay.Order() < slots[b].HalfDay.Order()
		})
	}
}

// CountSlots общее количество половин дня во всех днях
func CountSlots(days []DayAvailability) int {
	n := 0
	for _, d := range days {
		n += len(d.Slots)
	}
	return n
}

// SlotLoad сохранённый счётчик вместе с вместимостью, вычисленной из текущего расписания
// Если расписание уменьшили после резервирований, CurrentCount может превышать MaxCapacity
type SlotLoad struct {
	SlotCounter
	MaxCapacity int
	Bookable    bool
}
