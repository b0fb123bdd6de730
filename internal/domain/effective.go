package domain

import "time"

// HalfDaySchedule итоговое расписание половины дня после применения переопределений
type HalfDaySchedule struct {
	HalfDay     HalfDay
	Enabled     bool
	Window      *TimeWindow
	MaxCapacity int
}

// Bookable половина дня доступна для бронирования, только если она включена и у неё есть окно
func (s HalfDaySchedule) Bookable() bool {
	return s.Enabled && s.Window != nil
}

// EffectiveDaySchedule итоговое расписание компании на дату
type EffectiveDaySchedule struct {
	CompanyID  int64
	Date       time.Time
	Morning    HalfDaySchedule
	Afternoon  HalfDaySchedule
	Overridden bool    // на дату есть DateOverride
	Reason     *string // причина переопределения, если есть
}

// HalfDay возвращает расписание для половины дня
func (e EffectiveDaySchedule) HalfDay(h HalfDay) HalfDaySchedule {
	if h == Afternoon {
		return e.Afternoon
	}
	return e.Morning
}

// HasBookable есть ли на дату хотя бы одна доступная половина дня
func (e EffectiveDaySchedule) HasBookable() bool {
	return e.Morning.Bookable() || e.Afternoon.Bookable()
}

// ClosedDay расписание дня, в который ничего не доступно
func ClosedDay(companyID int64, date time.Time) EffectiveDaySchedule {
	return EffectiveDaySchedule{
		CompanyID: companyID,
		Date:      DateOnly(date),
		Morning:   HalfDaySchedule{HalfDay: Morning},
		Afternoon: HalfDaySchedule{HalfDay: Afternoon},
	}
}
