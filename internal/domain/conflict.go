package domain

import (
	"fmt"
	"time"
)

// ConflictKind describes the class of a scheduling conflict
type ConflictKind string

const (
	// ConflictDuplicatePlan same student, same seat, same timeslot, overlapping dates
	ConflictDuplicatePlan ConflictKind = "duplicate_plan"
	// ConflictStudentTime same student, same timeslot, different seat - one
	// person cannot occupy two seats during the same recurring window
	ConflictStudentTime ConflictKind = "student_time_conflict"
	// ConflictSeatTime same seat, any student, time-overlapping timeslots -
	// one seat cannot be double-booked for overlapping clock windows
	ConflictSeatTime ConflictKind = "seat_time_conflict"
)

// Conflict details the existing subscription a candidate collides with,
// so callers can render a specific, actionable message
type Conflict struct {
	Kind           ConflictKind
	SubscriptionID int64
	StudentID      int64
	SeatID         int64
	TimeslotID     int64
	TimeslotName   string
	StartDate      time.Time
	EndDate        time.Time
}

// ConflictError wraps a Conflict as an error for the create/renew paths
type ConflictError struct {
	Conflict Conflict
}

func (e *ConflictError) Error() string {
	c := e.Conflict
	return fmt.Sprintf("%s: seat %d, timeslot %q, %s..%s (subscription %d)",
		c.Kind, c.SeatID, c.TimeslotName,
		c.StartDate.Format(DateFormat), c.EndDate.Format(DateFormat), c.SubscriptionID)
}

// Candidate is a prospective subscription to be checked against the ledger.
// ExcludeID is set when re-checking an existing record (edits).
type Candidate struct {
	ExcludeID  *int64
	StudentID  int64
	SeatID     int64
	TimeslotID int64
	StartDate  time.Time
	EndDate    time.Time
}

// DetectConflicts runs the three conflict checks in order against the
// student's and the seat's subscriptions:
//
//  1. duplicate plan: same student+seat+timeslot with a date-range overlap;
//  2. student time conflict: same student+timeslot on a different seat;
//  3. seat time conflict: any subscription on the seat whose timeslot's
//     clock window overlaps the candidate's.
//
// Only active subscriptions with a date-range overlap participate; the
// candidate's own id is excluded. Returns the first conflict found, nil if
// the candidate is schedulable. timeslots must resolve every timeslot id
// referenced by seatSubs plus the candidate's own; a malformed or missing
// timeslot window is an error.
func DetectConflicts(
	c Candidate,
	candidateSlot *Timeslot,
	studentSubs []*Subscription,
	seatSubs []*Subscription,
	timeslots map[int64]*Timeslot,
) (*Conflict, error) {
	if candidateSlot == nil {
		return nil, fmt.Errorf("%w: candidate timeslot is nil", ErrInvalidTimeWindow)
	}
	if err := candidateSlot.Window().Validate(); err != nil {
		return nil, err
	}

	// Check 1: duplicate plan
	for _, sub := range studentSubs {
		if !relevant(c, sub) {
			continue
		}
		if sub.SeatID == c.SeatID && sub.TimeslotID == c.TimeslotID {
			return conflictFrom(ConflictDuplicatePlan, sub, candidateSlot.Name), nil
		}
	}

	// Check 2: same timeslot on a different seat
	for _, sub := range studentSubs {
		if !relevant(c, sub) {
			continue
		}
		if sub.TimeslotID == c.TimeslotID && sub.SeatID != c.SeatID {
			return conflictFrom(ConflictStudentTime, sub, candidateSlot.Name), nil
		}
	}

	// Check 3: time-overlapping timeslots on the same seat
	candidateWindow := candidateSlot.Window()
	for _, sub := range seatSubs {
		if !relevant(c, sub) {
			continue
		}
		slot, ok := timeslots[sub.TimeslotID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown timeslot id=%d on subscription id=%d",
				ErrInvalidTimeWindow, sub.TimeslotID, sub.ID)
		}
		overlaps, err := candidateWindow.Overlaps(slot.Window())
		if err != nil {
			return nil, fmt.Errorf("subscription id=%d: %w", sub.ID, err)
		}
		if overlaps {
			return conflictFrom(ConflictSeatTime, sub, slot.Name), nil
		}
	}

	return nil, nil
}

func relevant(c Candidate, sub *Subscription) bool {
	if !sub.IsActive() {
		return false
	}
	if c.ExcludeID != nil && sub.ID == *c.ExcludeID {
		return false
	}
	return sub.DateRangeOverlaps(c.StartDate, c.EndDate)
}

func conflictFrom(kind ConflictKind, sub *Subscription, timeslotName string) *Conflict {
	return &Conflict{
		Kind:           kind,
		SubscriptionID: sub.ID,
		StudentID:      sub.StudentID,
		SeatID:         sub.SeatID,
		TimeslotID:     sub.TimeslotID,
		TimeslotName:   timeslotName,
		StartDate:      sub.StartDate,
		EndDate:        sub.EndDate,
	}
}
