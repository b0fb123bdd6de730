package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidHalfDay возвращается при неизвестном значении половины дня
var ErrInvalidHalfDay = errors.New("domain: invalid half-day, expected morning or afternoon")

// HalfDay половина дня - единица гранулярности вместимости доставки
type HalfDay string

const (
	Morning   HalfDay = "morning"
	Afternoon HalfDay = "afternoon"
)

// HalfDays все значения в хронологическом порядке (утро раньше дня)
var HalfDays = [...]HalfDay{Morning, Afternoon}

// ParseHalfDay разбирает строковое значение (регистр не важен)
func ParseHalfDay(s string) (HalfDay, error) {
	switch HalfDay(strings.ToLower(strings.TrimSpace(s))) {
	case Morning:
		return Morning, nil
	case Afternoon:
		return Afternoon, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHalfDay, s)
	}
}

// Valid проверяет, что значение известно
func (h HalfDay) Valid() bool {
	return h == Morning || h == Afternoon
}

// Order порядковый номер внутри дня, используется при сортировке
func (h HalfDay) Order() int {
	if h == Afternoon {
		return 1
	}
	return 0
}

func (h HalfDay) String() string {
	return string(h)
}
