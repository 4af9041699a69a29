package domain

import (
	"time"

	"github.com/m04kA/SHM-SeatService/pkg/types"
)

// Timeslot represents a recurring daily time window sold as a plan
type Timeslot struct {
	ID               int64
	Name             string
	StartTime        types.TimeString
	EndTime          types.TimeString
	Price            float64
	DurationMonths   int // default renewal length
	LockersAvailable bool
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Window returns the timeslot's daily time window
func (t *Timeslot) Window() TimeWindow {
	return TimeWindow{Start: t.StartTime, End: t.EndTime}
}

// IsOvernight returns true if the timeslot wraps past midnight
func (t *Timeslot) IsOvernight() bool {
	return t.Window().IsOvernight()
}

// RenewalMonths returns the configured renewal length, falling back to the default
func (t *Timeslot) RenewalMonths() int {
	if t.DurationMonths >= MinDurationMonths {
		return t.DurationMonths
	}
	return DefaultDurationMonths
}
