package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHM-SeatService/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func slot(id int64, name, start, end string) *Timeslot {
	return &Timeslot{
		ID:        id,
		Name:      name,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		IsActive:  true,
	}
}

func sub(id, studentID, seatID, timeslotID int64, start, end time.Time) *Subscription {
	return &Subscription{
		ID:         id,
		StudentID:  studentID,
		SeatID:     seatID,
		TimeslotID: timeslotID,
		StartDate:  start,
		EndDate:    end,
		Status:     StatusActive,
	}
}

func TestDetectConflicts_NoConflict(t *testing.T) {
	morning := slot(1, "Morning", "09:00", "14:00")

	candidate := Candidate{
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 1,
		StartDate:  date(2026, 3, 1),
		EndDate:    date(2026, 5, 31),
	}

	conflict, err := DetectConflicts(candidate, morning, nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestDetectConflicts_DuplicatePlan(t *testing.T) {
	morning := slot(1, "Morning", "09:00", "14:00")
	existing := sub(100, 10, 5, 1, date(2026, 3, 1), date(2026, 5, 31))

	candidate := Candidate{
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 1,
		StartDate:  date(2026, 5, 1),
		EndDate:    date(2026, 7, 31),
	}

	conflict, err := DetectConflicts(candidate, morning,
		[]*Subscription{existing}, []*Subscription{existing},
		map[int64]*Timeslot{1: morning})
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, ConflictDuplicatePlan, conflict.Kind)
	assert.Equal(t, int64(100), conflict.SubscriptionID)
}

func TestDetectConflicts_StudentTimeBeatsSeatTime(t *testing.T) {
	// Тот же студент, тот же таймслот, другое место: конфликт студента,
	// даже если у места есть и временной конфликт
	morning := slot(1, "Morning", "09:00", "14:00")
	onOtherSeat := sub(100, 10, 6, 1, date(2026, 3, 1), date(2026, 5, 31))
	onTargetSeat := sub(101, 11, 5, 1, date(2026, 3, 1), date(2026, 5, 31))

	candidate := Candidate{
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 1,
		StartDate:  date(2026, 4, 1),
		EndDate:    date(2026, 6, 30),
	}

	conflict, err := DetectConflicts(candidate, morning,
		[]*Subscription{onOtherSeat}, []*Subscription{onTargetSeat},
		map[int64]*Timeslot{1: morning})
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, ConflictStudentTime, conflict.Kind)
	assert.Equal(t, int64(100), conflict.SubscriptionID)
}

func TestDetectConflicts_SeatTimeOverlap(t *testing.T) {
	morning := slot(1, "Morning", "09:00", "14:00")
	midday := slot(2, "Midday", "13:00", "18:00")

	// Другой студент занимает то же место на пересекающийся по часам таймслот
	existing := sub(100, 11, 5, 2, date(2026, 3, 1), date(2026, 5, 31))

	candidate := Candidate{
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 1,
		StartDate:  date(2026, 4, 1),
		EndDate:    date(2026, 6, 30),
	}

	conflict, err := DetectConflicts(candidate, morning,
		nil, []*Subscription{existing},
		map[int64]*Timeslot{2: midday})
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, ConflictSeatTime, conflict.Kind)
	assert.Equal(t, "Midday", conflict.TimeslotName)
}

func TestDetectConflicts_SeatFreeWhenWindowsDisjoint(t *testing.T) {
	morning := slot(1, "Morning", "09:00", "14:00")
	evening := slot(3, "Evening", "14:00", "22:00")

	existing := sub(100, 11, 5, 3, date(2026, 3, 1), date(2026, 5, 31))

	candidate := Candidate{
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 1,
		StartDate:  date(2026, 4, 1),
		EndDate:    date(2026, 6, 30),
	}

	conflict, err := DetectConflicts(candidate, morning,
		nil, []*Subscription{existing},
		map[int64]*Timeslot{3: evening})
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestDetectConflicts_OvernightSeatCollision(t *testing.T) {
	night := slot(4, "Night", "22:00", "06:00")
	earlyMorning := slot(5, "Early", "05:00", "09:00")

	existing := sub(100, 11, 5, 4, date(2026, 3, 1), date(2026, 5, 31))

	candidate := Candidate{
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 5,
		StartDate:  date(2026, 4, 1),
		EndDate:    date(2026, 6, 30),
	}

	conflict, err := DetectConflicts(candidate, earlyMorning,
		nil, []*Subscription{existing},
		map[int64]*Timeslot{4: night})
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, ConflictSeatTime, conflict.Kind)
}

func TestDetectConflicts_IgnoresDisjointDatesAndCancelled(t *testing.T) {
	morning := slot(1, "Morning", "09:00", "14:00")

	pastSub := sub(100, 10, 5, 1, date(2025, 1, 1), date(2025, 3, 31))
	cancelled := sub(101, 10, 5, 1, date(2026, 3, 1), date(2026, 5, 31))
	cancelled.Status = StatusCancelled

	candidate := Candidate{
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 1,
		StartDate:  date(2026, 4, 1),
		EndDate:    date(2026, 6, 30),
	}

	subs := []*Subscription{pastSub, cancelled}
	conflict, err := DetectConflicts(candidate, morning, subs, subs,
		map[int64]*Timeslot{1: morning})
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestDetectConflicts_ExcludesOwnID(t *testing.T) {
	// Перепроверка существующей записи не должна конфликтовать сама с собой
	morning := slot(1, "Morning", "09:00", "14:00")
	self := sub(100, 10, 5, 1, date(2026, 3, 1), date(2026, 5, 31))

	excludeID := int64(100)
	candidate := Candidate{
		ExcludeID:  &excludeID,
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 1,
		StartDate:  date(2026, 3, 1),
		EndDate:    date(2026, 5, 31),
	}

	subs := []*Subscription{self}
	conflict, err := DetectConflicts(candidate, morning, subs, subs,
		map[int64]*Timeslot{1: morning})
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestDetectConflicts_UnknownTimeslotIsError(t *testing.T) {
	morning := slot(1, "Morning", "09:00", "14:00")
	existing := sub(100, 11, 5, 99, date(2026, 3, 1), date(2026, 5, 31))

	candidate := Candidate{
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 1,
		StartDate:  date(2026, 4, 1),
		EndDate:    date(2026, 6, 30),
	}

	_, err := DetectConflicts(candidate, morning,
		nil, []*Subscription{existing},
		map[int64]*Timeslot{})
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestDetectConflicts_MalformedCandidateSlot(t *testing.T) {
	broken := slot(1, "Broken", "09:00", "09:00")

	candidate := Candidate{StudentID: 10, SeatID: 5, TimeslotID: 1,
		StartDate: date(2026, 4, 1), EndDate: date(2026, 6, 30)}

	_, err := DetectConflicts(candidate, broken, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}
