package seats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	seatRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/seat"
	"github.com/m04kA/SHM-SeatService/internal/service/seats/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSeatRepo struct {
	seat        *domain.Seat
	getErr      error
	updated     *domain.Gender
	deactivated bool
}

func (f *fakeSeatRepo) Create(_ context.Context, s *domain.Seat) (*domain.Seat, error) {
	s.ID = 42
	return s, nil
}

func (f *fakeSeatRepo) GetByID(_ context.Context, _ int64) (*domain.Seat, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.seat, nil
}

func (f *fakeSeatRepo) List(_ context.Context, _ seatRepo.ListFilter) ([]*domain.Seat, error) {
	return []*domain.Seat{f.seat}, nil
}

func (f *fakeSeatRepo) UpdateGenderRestriction(_ context.Context, _ int64, g domain.Gender) error {
	f.updated = &g
	return nil
}

func (f *fakeSeatRepo) Deactivate(_ context.Context, _ int64) error {
	f.deactivated = true
	return nil
}

type fakeSubRepo struct {
	count       int
	occupiedIDs []int64
}

func (f *fakeSubRepo) CountCurrentBySeat(_ context.Context, _ int64) (int, error) {
	return f.count, nil
}

func (f *fakeSubRepo) ListCurrentSeatIDs(_ context.Context) ([]int64, error) {
	return f.occupiedIDs, nil
}

func newTestService(seats *fakeSeatRepo, subs *fakeSubRepo) *Service {
	return NewService(seats, subs, fakeTxManager{}, nopLogger{})
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(&fakeSeatRepo{}, &fakeSubRepo{})

	_, err := svc.Create(context.Background(), &models.CreateSeatRequest{RowNumber: 0, GenderRestriction: "any"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateSeatRequest{RowNumber: 11, GenderRestriction: "any"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateSeatRequest{RowNumber: 3, GenderRestriction: "unknown"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_Success(t *testing.T) {
	svc := newTestService(&fakeSeatRepo{}, &fakeSubRepo{})

	resp, err := svc.Create(context.Background(), &models.CreateSeatRequest{RowNumber: 3, GenderRestriction: "female"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "female", resp.GenderRestriction)
	assert.True(t, resp.IsActive)
}

func TestGetEligible(t *testing.T) {
	t.Run("inactive seat looks absent", func(t *testing.T) {
		seats := &fakeSeatRepo{seat: &domain.Seat{ID: 1, GenderRestriction: domain.GenderAny, IsActive: false}}
		svc := newTestService(seats, &fakeSubRepo{})

		_, err := svc.GetEligible(context.Background(), 1, domain.GenderMale)
		assert.ErrorIs(t, err, ErrSeatNotFound)
	})

	t.Run("gender mismatch", func(t *testing.T) {
		seats := &fakeSeatRepo{seat: &domain.Seat{ID: 1, GenderRestriction: domain.GenderFemale, IsActive: true}}
		svc := newTestService(seats, &fakeSubRepo{})

		_, err := svc.GetEligible(context.Background(), 1, domain.GenderMale)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("eligible", func(t *testing.T) {
		seats := &fakeSeatRepo{seat: &domain.Seat{ID: 1, GenderRestriction: domain.GenderAny, IsActive: true}}
		svc := newTestService(seats, &fakeSubRepo{})

		seat, err := svc.GetEligible(context.Background(), 1, domain.GenderMale)
		require.NoError(t, err)
		assert.Equal(t, int64(1), seat.ID)
	})
}

func TestUpdateGenderRestriction_OccupiedSeat(t *testing.T) {
	seats := &fakeSeatRepo{seat: &domain.Seat{ID: 1, GenderRestriction: domain.GenderAny, IsActive: true}}
	subs := &fakeSubRepo{count: 2}
	svc := newTestService(seats, subs)

	_, err := svc.UpdateGenderRestriction(context.Background(), 1,
		&models.UpdateRestrictionRequest{GenderRestriction: "male"})
	assert.ErrorIs(t, err, ErrSeatOccupied)
	assert.Nil(t, seats.updated)
}

func TestUpdateGenderRestriction_FreeSeat(t *testing.T) {
	seats := &fakeSeatRepo{seat: &domain.Seat{ID: 1, GenderRestriction: domain.GenderAny, IsActive: true}}
	svc := newTestService(seats, &fakeSubRepo{count: 0})

	_, err := svc.UpdateGenderRestriction(context.Background(), 1,
		&models.UpdateRestrictionRequest{GenderRestriction: "male"})
	require.NoError(t, err)
	require.NotNil(t, seats.updated)
	assert.Equal(t, domain.GenderMale, *seats.updated)
}

func TestDeactivate_OccupiedSeat(t *testing.T) {
	seats := &fakeSeatRepo{seat: &domain.Seat{ID: 1, IsActive: true}}
	svc := newTestService(seats, &fakeSubRepo{count: 1})

	err := svc.Deactivate(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSeatOccupied)
	assert.False(t, seats.deactivated)
}

func TestDeactivate_FreeSeat(t *testing.T) {
	seats := &fakeSeatRepo{seat: &domain.Seat{ID: 1, IsActive: true}}
	svc := newTestService(seats, &fakeSubRepo{count: 0})

	require.NoError(t, svc.Deactivate(context.Background(), 1))
	assert.True(t, seats.deactivated)
}

func TestDeactivate_NotFound(t *testing.T) {
	seats := &fakeSeatRepo{getErr: seatRepo.ErrSeatNotFound}
	svc := newTestService(seats, &fakeSubRepo{})

	err := svc.Deactivate(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestList_MarksOccupiedSeats(t *testing.T) {
	seats := &fakeSeatRepo{seat: &domain.Seat{ID: 1, GenderRestriction: domain.GenderAny, IsActive: true}}
	subs := &fakeSubRepo{occupiedIDs: []int64{1, 9}}
	svc := newTestService(seats, subs)

	resp, err := svc.List(context.Background(), &models.ListSeatsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Seats, 1)
	assert.True(t, resp.Seats[0].IsOccupied)
}

func TestList_InvalidGenderFilter(t *testing.T) {
	svc := newTestService(&fakeSeatRepo{seat: &domain.Seat{ID: 1}}, &fakeSubRepo{})

	bad := "any" // для фильтра студента "any" не допускается
	_, err := svc.List(context.Background(), &models.ListSeatsRequest{Gender: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
