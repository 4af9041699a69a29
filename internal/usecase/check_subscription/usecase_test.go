package check_subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	timeslotRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/timeslot"
	"github.com/m04kA/SHM-SeatService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSubRepo struct {
	overlappingByStudent []*domain.Subscription
	overlappingBySeat    []*domain.Subscription
}

func (f *fakeSubRepo) GetOverlapping(_ context.Context, filter domain.OverlapFilter) ([]*domain.Subscription, error) {
	if filter.StudentID != nil {
		return f.overlappingByStudent, nil
	}
	return f.overlappingBySeat, nil
}

type fakeTimeslotRepo struct {
	slots map[int64]*domain.Timeslot
	err   error
}

func (f *fakeTimeslotRepo) GetByID(_ context.Context, id int64) (*domain.Timeslot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots[id], nil
}

func (f *fakeTimeslotRepo) List(_ context.Context, _ bool) ([]*domain.Timeslot, error) {
	out := make([]*domain.Timeslot, 0, len(f.slots))
	for _, s := range f.slots {
		out = append(out, s)
	}
	return out, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func morningSlot() *domain.Timeslot {
	return &domain.Timeslot{
		ID:        1,
		Name:      "Morning",
		StartTime: types.TimeString("09:00"),
		EndTime:   types.TimeString("14:00"),
		IsActive:  true,
	}
}

func validRequest() *Request {
	return &Request{
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 1,
		StartDate:  date(2026, 3, 1),
		EndDate:    date(2026, 5, 31),
	}
}

func TestExecute_Schedulable(t *testing.T) {
	uc := NewUseCase(
		&fakeSubRepo{},
		&fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: morningSlot()}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Ok)
	assert.Nil(t, resp.Conflict)
}

func TestExecute_ReportsConflictDetails(t *testing.T) {
	existing := &domain.Subscription{
		ID:         100,
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 1,
		StartDate:  date(2026, 3, 1),
		EndDate:    date(2026, 5, 31),
		Status:     domain.StatusActive,
	}

	uc := NewUseCase(
		&fakeSubRepo{
			overlappingByStudent: []*domain.Subscription{existing},
			overlappingBySeat:    []*domain.Subscription{existing},
		},
		&fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: morningSlot()}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Конфликт - это данные ответа, а не ошибка: проверка рекомендательная
	assert.False(t, resp.Ok)
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, string(domain.ConflictDuplicatePlan), resp.Conflict.Kind)
	assert.Equal(t, int64(100), resp.Conflict.SubscriptionID)
	assert.Equal(t, "Morning", resp.Conflict.TimeslotName)
}

func TestExecute_TimeslotNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeSubRepo{},
		&fakeTimeslotRepo{err: timeslotRepo.ErrTimeslotNotFound},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeslotNotFound)
}

func TestExecute_InactiveTimeslot(t *testing.T) {
	slot := morningSlot()
	slot.IsActive = false

	uc := NewUseCase(
		&fakeSubRepo{},
		&fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: slot}},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeslotNotFound)
}

func TestExecute_ValidationFailure(t *testing.T) {
	uc := NewUseCase(&fakeSubRepo{}, &fakeTimeslotRepo{}, nopLogger{})

	req := validRequest()
	req.EndDate = req.StartDate
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
