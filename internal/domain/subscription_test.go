package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscription_IsCurrent(t *testing.T) {
	s := &Subscription{
		Status:    StatusActive,
		StartDate: date(2026, 3, 1),
		EndDate:   date(2026, 5, 31),
	}

	// Последний день включительно
	assert.True(t, s.IsCurrent(date(2026, 5, 31)))
	assert.True(t, s.IsCurrent(date(2026, 4, 15)))
	assert.False(t, s.IsCurrent(date(2026, 6, 1)))

	// Время суток не влияет на сравнение
	assert.True(t, s.IsCurrent(time.Date(2026, 5, 31, 23, 59, 0, 0, time.UTC)))

	s.Status = StatusCancelled
	assert.False(t, s.IsCurrent(date(2026, 4, 15)))
}

func TestSubscription_DateRangeOverlaps(t *testing.T) {
	s := &Subscription{StartDate: date(2026, 3, 1), EndDate: date(2026, 5, 31)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"fully before", date(2026, 1, 1), date(2026, 2, 28), false},
		{"fully after", date(2026, 6, 1), date(2026, 8, 31), false},
		{"touching end day overlaps", date(2026, 5, 31), date(2026, 8, 31), true},
		{"touching start day overlaps", date(2026, 1, 1), date(2026, 3, 1), true},
		{"contained", date(2026, 4, 1), date(2026, 4, 30), true},
		{"containing", date(2026, 1, 1), date(2026, 12, 31), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.DateRangeOverlaps(tt.start, tt.end))
		})
	}
}

func TestSubscription_CanBeCancelled(t *testing.T) {
	active := &Subscription{Status: StatusActive}
	cancelled := &Subscription{Status: StatusCancelled}

	assert.True(t, active.CanBeCancelled())
	assert.False(t, cancelled.CanBeCancelled())
}

func TestFormatReceiptNumber(t *testing.T) {
	day := date(2026, 9, 1)

	assert.Equal(t, "RCP-20260901-", ReceiptPrefix(day))
	assert.Equal(t, "RCP-20260901-0001", FormatReceiptNumber(day, 1))
	assert.Equal(t, "RCP-20260901-0042", FormatReceiptNumber(day, 42))
	assert.Equal(t, "RCP-20260901-9999", FormatReceiptNumber(day, 9999))
}

func TestTimeslot_RenewalMonths(t *testing.T) {
	assert.Equal(t, 6, (&Timeslot{DurationMonths: 6}).RenewalMonths())
	assert.Equal(t, DefaultDurationMonths, (&Timeslot{DurationMonths: 0}).RenewalMonths())
}

func TestGender_Validity(t *testing.T) {
	assert.True(t, GenderMale.ValidForSeat())
	assert.True(t, GenderAny.ValidForSeat())
	assert.False(t, Gender("other").ValidForSeat())

	assert.True(t, GenderFemale.ValidForStudent())
	assert.False(t, GenderAny.ValidForStudent())
}

func TestSeat_AllowsGender(t *testing.T) {
	unrestricted := &Seat{GenderRestriction: GenderAny}
	femaleOnly := &Seat{GenderRestriction: GenderFemale}

	assert.True(t, unrestricted.AllowsGender(GenderMale))
	assert.True(t, unrestricted.AllowsGender(GenderFemale))
	assert.True(t, femaleOnly.AllowsGender(GenderFemale))
	assert.False(t, femaleOnly.AllowsGender(GenderMale))
}
