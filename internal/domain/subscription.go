package domain

import "time"

// SubscriptionStatus represents the lifecycle state of a subscription
type SubscriptionStatus string

const (
	// StatusActive subscription occupies its seat until end date
	StatusActive SubscriptionStatus = "active"
	// StatusCancelled soft-deleted; keeps its receipt number reserved and
	// stays visible in occupancy history
	StatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription represents a paid seat/timeslot assignment over a date range.
// End date is inclusive: the seat is occupied through EndDate.
type Subscription struct {
	ID            int64
	StudentID     int64
	SeatID        int64
	TimeslotID    int64
	StartDate     time.Time
	EndDate       time.Time
	AmountPaid    float64
	ReceiptNumber string
	Status        SubscriptionStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive returns true if the subscription has not been cancelled
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// IsCurrent returns true if the subscription occupies its seat on the given day:
// it is active and its inclusive end date has not passed. The owning student's
// active flag is checked at the storage layer.
func (s *Subscription) IsCurrent(today time.Time) bool {
	return s.IsActive() && !truncateToDay(s.EndDate).Before(truncateToDay(today))
}

// CanBeCancelled returns true if the subscription can be soft-deleted
func (s *Subscription) CanBeCancelled() bool {
	return s.Status == StatusActive
}

// DateRangeOverlaps returns true if [s.StartDate, s.EndDate] intersects
// [start, end], both ranges inclusive and compared at day granularity
func (s *Subscription) DateRangeOverlaps(start, end time.Time) bool {
	selfStart := truncateToDay(s.StartDate)
	selfEnd := truncateToDay(s.EndDate)
	otherStart := truncateToDay(start)
	otherEnd := truncateToDay(end)
	return !(selfEnd.Before(otherStart) || selfStart.After(otherEnd))
}

// OverlapFilter scopes ledger reads to subscriptions whose date range is not
// disjoint from [StartDate, EndDate], optionally excluding one id (edits)
type OverlapFilter struct {
	StudentID *int64
	SeatID    *int64
	StartDate time.Time
	EndDate   time.Time
	ExcludeID *int64
}

// ExpiryNotice is one row of the reminder feed consumed by messaging
type ExpiryNotice struct {
	SubscriptionID int64
	StudentID      int64
	StudentName    string
	Mobile         string
	SeatID         int64
	TimeslotName   string
	EndDate        time.Time
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
