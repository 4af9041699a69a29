package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SHM-SeatService/pkg/types"
)

var (
	// ErrInvalidTimeWindow возвращается для окна с некорректным или пустым временем
	ErrInvalidTimeWindow = errors.New("domain: invalid time window")
)

// TimeWindow represents a [start, end) time-of-day interval.
// End numerically less than start designates an overnight window
// (e.g. 22:00-06:00), not an invalid range.
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate checks both times parse as HH:MM and the window is non-degenerate
func (w TimeWindow) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidTimeWindow, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidTimeWindow, err)
	}
	if w.Start == w.End {
		return fmt.Errorf("%w: start equals end (%s)", ErrInvalidTimeWindow, w.Start)
	}
	return nil
}

// IsOvernight returns true if the window wraps past midnight (start > end)
func (w TimeWindow) IsOvernight() bool {
	return w.End.IsBefore(w.Start)
}

// Overlaps reports whether two daily windows share clock time.
//
// Policy:
//   - both overnight: always overlap (both contain the midnight instant);
//   - self overnight, other normal: the normal window either starts in the
//     late segment (otherStart >= selfStart) or ends in the early segment
//     (otherEnd <= selfEnd);
//   - other overnight: mirror of the above;
//   - neither overnight: standard half-open interval overlap.
//
// Malformed windows are an error, never a silent "no overlap" - treating
// unparsable times as conflict-free would approve double-bookings.
func (w TimeWindow) Overlaps(other TimeWindow) (bool, error) {
	if err := w.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}

	selfOvernight := w.IsOvernight()
	otherOvernight := other.IsOvernight()

	switch {
	case selfOvernight && otherOvernight:
		return true, nil
	case selfOvernight:
		return !other.Start.IsBefore(w.Start) || !other.End.IsAfter(w.End), nil
	case otherOvernight:
		return !w.Start.IsBefore(other.Start) || !w.End.IsAfter(other.End), nil
	default:
		return w.Start.IsBefore(other.End) && other.Start.IsBefore(w.End), nil
	}
}
