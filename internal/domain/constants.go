package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Seat layout constants
const (
	MinRowNumber = 1
	MaxRowNumber = 10
)

// Timeslot validation constants
const (
	MinDurationMonths = 1
	MaxDurationMonths = 12
	MaxTimeslotName   = 100
)

// DefaultDurationMonths renewal length used when a timeslot does not configure one
const DefaultDurationMonths = 1
