package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	studentRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/student"
	subRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/subscription"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSubRepo struct {
	sub       *domain.Subscription
	subs      []*domain.Subscription
	notices   []*domain.ExpiryNotice
	getErr    error
	cancelled bool
	deleted   bool
}

func (f *fakeSubRepo) GetByID(_ context.Context, _ int64) (*domain.Subscription, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.sub, nil
}

func (f *fakeSubRepo) GetByStudent(_ context.Context, _ int64, activeOnly bool) ([]*domain.Subscription, error) {
	if !activeOnly {
		return f.subs, nil
	}
	out := make([]*domain.Subscription, 0, len(f.subs))
	for _, s := range f.subs {
		if s.IsActive() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubRepo) Cancel(_ context.Context, _ int64) error {
	f.cancelled = true
	return nil
}

func (f *fakeSubRepo) Delete(_ context.Context, _ int64) error {
	if f.sub == nil {
		return subRepo.ErrSubscriptionNotFound
	}
	f.deleted = true
	return nil
}

func (f *fakeSubRepo) GetExpiringWithin(_ context.Context, _ int) ([]*domain.ExpiryNotice, error) {
	return f.notices, nil
}

func (f *fakeSubRepo) GetExpiredWithin(_ context.Context, _ int) ([]*domain.ExpiryNotice, error) {
	return f.notices, nil
}

type fakeStudentRepo struct {
	err error
}

func (f *fakeStudentRepo) GetByID(_ context.Context, _ int64) (*domain.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Student{ID: 10, IsActive: true}, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func activeSub() *domain.Subscription {
	return &domain.Subscription{
		ID:            100,
		StudentID:     10,
		SeatID:        5,
		TimeslotID:    1,
		StartDate:     date(2026, 3, 1),
		EndDate:       date(2026, 5, 31),
		AmountPaid:    1500,
		ReceiptNumber: "RCP-20260220-0007",
		Status:        domain.StatusActive,
	}
}

func TestGetByID(t *testing.T) {
	svc := NewService(&fakeSubRepo{sub: activeSub()}, &fakeStudentRepo{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "RCP-20260220-0007", resp.ReceiptNumber)
	assert.Equal(t, "2026-03-01", resp.StartDate)
	assert.Equal(t, "2026-05-31", resp.EndDate)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeSubRepo{getErr: subRepo.ErrSubscriptionNotFound}, &fakeStudentRepo{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 100)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestGetByStudent(t *testing.T) {
	cancelled := activeSub()
	cancelled.ID = 101
	cancelled.Status = domain.StatusCancelled

	repo := &fakeSubRepo{subs: []*domain.Subscription{activeSub(), cancelled}}
	svc := NewService(repo, &fakeStudentRepo{}, nopLogger{})

	resp, err := svc.GetByStudent(context.Background(), 10, false)
	require.NoError(t, err)
	assert.Len(t, resp.Subscriptions, 2)

	resp, err = svc.GetByStudent(context.Background(), 10, true)
	require.NoError(t, err)
	require.Len(t, resp.Subscriptions, 1)
	assert.Equal(t, int64(100), resp.Subscriptions[0].ID)
}

func TestGetByStudent_UnknownStudent(t *testing.T) {
	svc := NewService(&fakeSubRepo{}, &fakeStudentRepo{err: studentRepo.ErrStudentNotFound}, nopLogger{})

	_, err := svc.GetByStudent(context.Background(), 99, false)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestCancel(t *testing.T) {
	repo := &fakeSubRepo{sub: activeSub()}
	svc := NewService(repo, &fakeStudentRepo{}, nopLogger{})

	require.NoError(t, svc.Cancel(context.Background(), 100))
	assert.True(t, repo.cancelled)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	sub := activeSub()
	sub.Status = domain.StatusCancelled

	repo := &fakeSubRepo{sub: sub}
	svc := NewService(repo, &fakeStudentRepo{}, nopLogger{})

	err := svc.Cancel(context.Background(), 100)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.False(t, repo.cancelled)
}

func TestDelete(t *testing.T) {
	repo := &fakeSubRepo{sub: activeSub()}
	svc := NewService(repo, &fakeStudentRepo{}, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 100))
	assert.True(t, repo.deleted)

	empty := &fakeSubRepo{}
	svc = NewService(empty, &fakeStudentRepo{}, nopLogger{})
	assert.ErrorIs(t, svc.Delete(context.Background(), 100), ErrSubscriptionNotFound)
}

func TestExpiryFeeds(t *testing.T) {
	notices := []*domain.ExpiryNotice{{
		SubscriptionID: 100,
		StudentID:      10,
		StudentName:    "Иванов Иван",
		Mobile:         "+79001234567",
		SeatID:         5,
		TimeslotName:   "Morning",
		EndDate:        date(2026, 9, 5),
	}}

	svc := NewService(&fakeSubRepo{notices: notices}, &fakeStudentRepo{}, nopLogger{})

	resp, err := svc.ListExpiringSoon(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, resp.Notices, 1)
	assert.Equal(t, "2026-09-05", resp.Notices[0].EndDate)

	_, err = svc.ListExpiringSoon(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListExpired(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
