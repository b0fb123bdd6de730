package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultAfternoonStartHour час, начиная с которого текущей половиной дня считается Afternoon
const DefaultAfternoonStartHour = 13

// Business validation constants
const (
	MinCapacity         = 0
	MaxCapacity         = 10000
	MinAdvanceSlots     = 0
	MaxAdvanceSlots     = 60
	MaxReasonLength     = 200
	MaxOrderIDLength    = 128
	DefaultMaxRangeDays = 62
)
