package timeslots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	seatRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/seat"
	timeslotRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/timeslot"
	"github.com/m04kA/SHM-SeatService/internal/service/timeslots/models"
	"github.com/m04kA/SHM-SeatService/pkg/ptr"
	"github.com/m04kA/SHM-SeatService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTimeslotRepo struct {
	slots     map[int64]*domain.Timeslot
	createErr error
	updateErr error
	getCalls  int
	listCalls int
}

func (f *fakeTimeslotRepo) Create(_ context.Context, t *domain.Timeslot) (*domain.Timeslot, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	t.ID = 7
	return t, nil
}

func (f *fakeTimeslotRepo) GetByID(_ context.Context, id int64) (*domain.Timeslot, error) {
	f.getCalls++
	slot, ok := f.slots[id]
	if !ok {
		return nil, timeslotRepo.ErrTimeslotNotFound
	}
	return slot, nil
}

func (f *fakeTimeslotRepo) List(_ context.Context, _ bool) ([]*domain.Timeslot, error) {
	f.listCalls++
	out := make([]*domain.Timeslot, 0, len(f.slots))
	for _, s := range f.slots {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeTimeslotRepo) Update(_ context.Context, id int64, t *domain.Timeslot) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.slots[id]; !ok {
		return timeslotRepo.ErrTimeslotNotFound
	}
	f.slots[id] = t
	return nil
}

func (f *fakeTimeslotRepo) Deactivate(_ context.Context, id int64) error {
	slot, ok := f.slots[id]
	if !ok {
		return timeslotRepo.ErrTimeslotNotFound
	}
	slot.IsActive = false
	return nil
}

type fakeSeatRepo struct {
	seats []*domain.Seat
}

func (f *fakeSeatRepo) List(_ context.Context, _ seatRepo.ListFilter) ([]*domain.Seat, error) {
	return f.seats, nil
}

type fakeSubRepo struct {
	occupied int
}

func (f *fakeSubRepo) CountCurrentSeatsByTimeslot(_ context.Context, _ int64) (int, error) {
	return f.occupied, nil
}

func morningSlot() *domain.Timeslot {
	return &domain.Timeslot{
		ID:             1,
		Name:           "Morning",
		StartTime:      types.TimeString("09:00"),
		EndTime:        types.TimeString("14:00"),
		Price:          1500,
		DurationMonths: 3,
		IsActive:       true,
	}
}

func validCreateRequest() *models.CreateTimeslotRequest {
	return &models.CreateTimeslotRequest{
		Name:           "Evening",
		StartTime:      "17:00",
		EndTime:        "22:00",
		Price:          2000,
		DurationMonths: 3,
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{}}
	svc := NewService(repo, &fakeSeatRepo{}, &fakeSubRepo{}, nopLogger{})

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "17:00", resp.StartTime)
	assert.True(t, resp.IsActive)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&fakeTimeslotRepo{}, &fakeSeatRepo{}, &fakeSubRepo{}, nopLogger{})

	tests := []struct {
		name   string
		mutate func(*models.CreateTimeslotRequest)
	}{
		{"empty name", func(r *models.CreateTimeslotRequest) { r.Name = "" }},
		{"negative price", func(r *models.CreateTimeslotRequest) { r.Price = -1 }},
		{"zero price", func(r *models.CreateTimeslotRequest) { r.Price = 0 }},
		{"zero duration", func(r *models.CreateTimeslotRequest) { r.DurationMonths = 0 }},
		{"duration too long", func(r *models.CreateTimeslotRequest) { r.DurationMonths = 13 }},
		{"bad start time", func(r *models.CreateTimeslotRequest) { r.StartTime = "9:00" }},
		{"degenerate window", func(r *models.CreateTimeslotRequest) { r.EndTime = r.StartTime }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := &fakeTimeslotRepo{createErr: timeslotRepo.ErrDuplicateName}
	svc := NewService(repo, &fakeSeatRepo{}, &fakeSubRepo{}, nopLogger{})

	_, err := svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestCreate_AllowsOvernightWindow(t *testing.T) {
	repo := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{}}
	svc := NewService(repo, &fakeSeatRepo{}, &fakeSubRepo{}, nopLogger{})

	req := validCreateRequest()
	req.StartTime = "22:00"
	req.EndTime = "06:00"

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "22:00", resp.StartTime)
	assert.Equal(t, "06:00", resp.EndTime)
}

func TestGetByID_CachesReads(t *testing.T) {
	repo := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: morningSlot()}}
	svc := NewService(repo, &fakeSeatRepo{}, &fakeSubRepo{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.getCalls)
}

func TestList_CachesAndInvalidatesOnUpdate(t *testing.T) {
	repo := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: morningSlot()}}
	svc := NewService(repo, &fakeSeatRepo{}, &fakeSubRepo{}, nopLogger{})

	_, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	_, err = svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	// Запись инвалидирует кеш, следующее чтение идёт в репозиторий
	_, err = svc.Update(context.Background(), 1, &models.UpdateTimeslotRequest{Price: ptr.Ptr(1800.0)})
	require.NoError(t, err)

	_, err = svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{}}
	svc := NewService(repo, &fakeSeatRepo{}, &fakeSubRepo{}, nopLogger{})

	_, err := svc.Update(context.Background(), 99, &models.UpdateTimeslotRequest{Price: ptr.Ptr(1800.0)})
	assert.ErrorIs(t, err, ErrTimeslotNotFound)
}

func TestUpdate_RejectsDegenerateWindow(t *testing.T) {
	repo := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: morningSlot()}}
	svc := NewService(repo, &fakeSeatRepo{}, &fakeSubRepo{}, nopLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdateTimeslotRequest{
		StartTime: ptr.Ptr("14:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_RejectsNonPositivePrice(t *testing.T) {
	repo := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: morningSlot()}}
	svc := NewService(repo, &fakeSeatRepo{}, &fakeSubRepo{}, nopLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdateTimeslotRequest{Price: ptr.Ptr(0.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_RejectedRenameDoesNotPoisonCache(t *testing.T) {
	repo := &fakeTimeslotRepo{
		slots:     map[int64]*domain.Timeslot{1: morningSlot()},
		updateErr: timeslotRepo.ErrDuplicateName,
	}
	svc := NewService(repo, &fakeSeatRepo{}, &fakeSubRepo{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Morning", resp.Name)

	_, err = svc.Update(context.Background(), 1, &models.UpdateTimeslotRequest{Name: ptr.Ptr("Evening")})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// Кеш не тронут отклонённым обновлением: читается старое имя,
	// причём по-прежнему из кеша
	resp, err = svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Morning", resp.Name)
	assert.Equal(t, 1, repo.getCalls)
}

func TestDeactivate(t *testing.T) {
	slot := morningSlot()
	repo := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: slot}}
	svc := NewService(repo, &fakeSeatRepo{}, &fakeSubRepo{}, nopLogger{})

	require.NoError(t, svc.Deactivate(context.Background(), 1))
	assert.False(t, slot.IsActive)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), 99), ErrTimeslotNotFound)
}

func TestOccupancy(t *testing.T) {
	repo := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: morningSlot()}}
	seats := &fakeSeatRepo{seats: []*domain.Seat{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}}
	subs := &fakeSubRepo{occupied: 3}
	svc := NewService(repo, seats, subs, nopLogger{})

	resp, err := svc.Occupancy(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.OccupiedSeats)
	assert.Equal(t, 4, resp.TotalSeats)
	assert.InDelta(t, 75.0, resp.OccupancyRate, 0.001)
}

func TestOccupancy_NoSeats(t *testing.T) {
	repo := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: morningSlot()}}
	svc := NewService(repo, &fakeSeatRepo{}, &fakeSubRepo{}, nopLogger{})

	resp, err := svc.Occupancy(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, resp.OccupancyRate)
}
