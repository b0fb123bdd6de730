package advance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// 2025-10-13 - понедельник
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func slot(h domain.HalfDay) domain.HalfDayAvailability {
	return domain.HalfDayAvailability{HalfDay: h, MaxCapacity: 5, Remaining: 5, IsAvailable: true}
}

// sequence пять половин дня: A=пн утро, B=пн день, C=вт утро, D=вт день, E=ср утро
func sequence() []domain.DayAvailability {
	return []domain.DayAvailability{
		{Date: monday, Slots: []domain.HalfDayAvailability{slot(domain.Morning), slot(domain.Afternoon)}},
		{Date: monday.AddDate(0, 0, 1), Slots: []domain.HalfDayAvailability{slot(domain.Morning), slot(domain.Afternoon)}},
		{Date: monday.AddDate(0, 0, 2), Slots: []domain.HalfDayAvailability{slot(domain.Morning)}},
	}
}

type key struct {
	date string
	half domain.HalfDay
}

func flatten(days []domain.DayAvailability) []key {
	var out []key
	for _, d := range days {
		for _, s := range d.Slots {
			out = append(out, key{d.Date.Format(domain.DateFormat), s.HalfDay})
		}
	}
	return out
}

func TestFilter_CurrentHalfDay(t *testing.T) {
	f := NewFilter(13)

	assert.Equal(t, domain.Morning, f.CurrentHalfDay(monday.Add(12*time.Hour+59*time.Minute)))
	assert.Equal(t, domain.Afternoon, f.CurrentHalfDay(monday.Add(13*time.Hour)))
	assert.Equal(t, domain.Morning, f.CurrentHalfDay(monday))
}

func TestNewFilter_InvalidHourFallsBackToDefault(t *testing.T) {
	f := NewFilter(0)
	assert.Equal(t, domain.DefaultAfternoonStartHour, f.afternoonStartHour)

	f = NewFilter(24)
	assert.Equal(t, domain.DefaultAfternoonStartHour, f.afternoonStartHour)
}

func TestFilter_Apply(t *testing.T) {
	f := NewFilter(13)
	mondayAfternoon := monday.Add(15 * time.Hour) // текущая половина дня - B

	tests := []struct {
		name     string
		days     []domain.DayAvailability
		min      int
		now      time.Time
		expected []key
	}{
		{
			name: "skip two after current",
			days: sequence(),
			min:  2,
			now:  mondayAfternoon,
			expected: []key{
				{"2025-10-14", domain.Afternoon},
				{"2025-10-15", domain.Morning},
			},
		},
		{
			name: "zero keeps current half-day",
			days: sequence(),
			min:  0,
			now:  mondayAfternoon,
			expected: []key{
				{"2025-10-13", domain.Afternoon},
				{"2025-10-14", domain.Morning},
				{"2025-10-14", domain.Afternoon},
				{"2025-10-15", domain.Morning},
			},
		},
		{
			name: "negative treated as zero",
			days: sequence(),
			min:  -3,
			now:  monday.Add(8 * time.Hour),
			expected: []key{
				{"2025-10-13", domain.Morning},
				{"2025-10-13", domain.Afternoon},
				{"2025-10-14", domain.Morning},
				{"2025-10-14", domain.Afternoon},
				{"2025-10-15", domain.Morning},
			},
		},
		{
			name: "now outside range counts from start",
			days: sequence(),
			min:  3,
			now:  monday.AddDate(0, 0, -5),
			expected: []key{
				{"2025-10-14", domain.Afternoon},
				{"2025-10-15", domain.Morning},
			},
		},
		{
			name: "current half-day missing counts from start",
			days: sequence()[1:],
			min:  1,
			now:  mondayAfternoon,
			expected: []key{
				{"2025-10-14", domain.Afternoon},
				{"2025-10-15", domain.Morning},
			},
		},
		{
			name:     "skip beyond end",
			days:     sequence(),
			min:      4,
			now:      mondayAfternoon,
			expected: nil,
		},
		{
			name:     "empty input",
			days:     nil,
			min:      1,
			now:      mondayAfternoon,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Apply(tt.days, tt.min, tt.now)
			assert.NotNil(t, got)
			assert.Equal(t, tt.expected, flatten(got))
		})
	}
}

func TestFilter_Apply_UnsortedInputAndReason(t *testing.T) {
	f := NewFilter(13)
	reason := "короткий день"

	days := []domain.DayAvailability{
		{Date: monday.AddDate(0, 0, 1), Reason: &reason, Slots: []domain.HalfDayAvailability{slot(domain.Afternoon), slot(domain.Morning)}},
		{Date: monday, Slots: []domain.HalfDayAvailability{slot(domain.Morning)}},
	}

	got := f.Apply(days, 1, monday.Add(9*time.Hour))

	assert.Equal(t, []key{
		{"2025-10-14", domain.Morning},
		{"2025-10-14", domain.Afternoon},
	}, flatten(got))
	if assert.Len(t, got, 1) {
		assert.Equal(t, &reason, got[0].Reason)
	}

	// вход не меняется
	assert.Equal(t, domain.Afternoon, days[0].Slots[0].HalfDay)
	assert.Equal(t, monday.AddDate(0, 0, 1), days[0].Date)
}

func TestFilter_Apply_MondayScenario(t *testing.T) {
	f := NewFilter(13)
	days := []domain.DayAvailability{
		{Date: monday, Slots: []domain.HalfDayAvailability{slot(domain.Morning)}},
	}

	got := f.Apply(days, 1, monday.Add(8*time.Hour))

	assert.Empty(t, got)
}
