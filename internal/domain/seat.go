package domain

import "time"

// Gender represents a seat gender restriction or a student's gender
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderAny    Gender = "any" // seats only: no restriction
)

// ValidForSeat returns true if the value is a valid seat restriction
func (g Gender) ValidForSeat() bool {
	return g == GenderMale || g == GenderFemale || g == GenderAny
}

// ValidForStudent returns true if the value is a valid student gender
func (g Gender) ValidForStudent() bool {
	return g == GenderMale || g == GenderFemale
}

// Seat represents a physical seat in the study hall
type Seat struct {
	ID                int64
	RowNumber         int
	GenderRestriction Gender
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AllowsGender returns true if a student of the given gender may occupy the seat
func (s *Seat) AllowsGender(g Gender) bool {
	return s.GenderRestriction == GenderAny || s.GenderRestriction == g
}
