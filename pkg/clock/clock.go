package clock

import "time"

// Clock источник текущего времени в часовом поясе сервиса
type Clock struct {
	loc *time.Location
}

// New создает часы для часового пояса loc (nil = UTC)
func New(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc}
}

// Now возвращает текущее время
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fixed часы, всегда возвращающие одно и то же время (для тестов)
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
