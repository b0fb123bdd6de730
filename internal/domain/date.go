package domain

import "time"

// DateOnly отбрасывает время и часовой пояс, оставляя календарную дату в UTC
// Все даты в домене (ключи счётчиков, переопределения) хранятся в таком виде
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// SameDate сравнивает только календарные даты
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// DaysInRange количество дат в диапазоне [start, end] включительно (0, если end < start)
func DaysInRange(start, end time.Time) int {
	s, e := DateOnly(start), DateOnly(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// EachDate вызывает fn для каждой даты диапазона [start, end] по возрастанию
func EachDate(start, end time.Time, fn func(date time.Time)) {
	for d, e := DateOnly(start), DateOnly(end); !d.After(e); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
