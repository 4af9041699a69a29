package create_subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	studentRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/student"
	"github.com/m04kA/SHM-SeatService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeSubRepo struct {
	overlappingByStudent []*domain.Subscription
	overlappingBySeat    []*domain.Subscription
	nextSeq              int
	created              *domain.Subscription
}

func (f *fakeSubRepo) Create(_ context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	sub.ID = 500
	f.created = sub
	return sub, nil
}

func (f *fakeSubRepo) GetOverlapping(_ context.Context, filter domain.OverlapFilter) ([]*domain.Subscription, error) {
	if filter.StudentID != nil {
		return f.overlappingByStudent, nil
	}
	return f.overlappingBySeat, nil
}

func (f *fakeSubRepo) NextReceiptSequence(_ context.Context, _ time.Time) (int, error) {
	return f.nextSeq, nil
}

type fakeTimeslotRepo struct {
	slots map[int64]*domain.Timeslot
}

func (f *fakeTimeslotRepo) GetByID(_ context.Context, id int64) (*domain.Timeslot, error) {
	return f.slots[id], nil
}

func (f *fakeTimeslotRepo) List(_ context.Context, _ bool) ([]*domain.Timeslot, error) {
	out := make([]*domain.Timeslot, 0, len(f.slots))
	for _, s := range f.slots {
		out = append(out, s)
	}
	return out, nil
}

type fakeSeatRepo struct {
	seat *domain.Seat
}

func (f *fakeSeatRepo) GetByID(_ context.Context, _ int64) (*domain.Seat, error) {
	return f.seat, nil
}

type fakeStudentRepo struct {
	student *domain.Student
	err     error
}

func (f *fakeStudentRepo) GetByID(_ context.Context, _ int64) (*domain.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.student, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
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

func newTestUseCase(
	subs *fakeSubRepo,
	slots *fakeTimeslotRepo,
	seats *fakeSeatRepo,
	students *fakeStudentRepo,
	now time.Time,
) *UseCase {
	uc := NewUseCase(subs, slots, seats, students, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{t: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 1,
		StartDate:  date(2026, 3, 1),
		EndDate:    date(2026, 5, 31),
		AmountPaid: 1500,
	}
}

func TestExecute_Success(t *testing.T) {
	subs := &fakeSubRepo{nextSeq: 7}
	slots := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: morningSlot()}}
	seats := &fakeSeatRepo{seat: &domain.Seat{ID: 5, RowNumber: 2, GenderRestriction: domain.GenderAny, IsActive: true}}
	students := &fakeStudentRepo{student: &domain.Student{ID: 10, Gender: domain.GenderMale, IsActive: true}}

	uc := newTestUseCase(subs, slots, seats, students, date(2026, 2, 20))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(500), resp.ID)
	assert.Equal(t, "RCP-20260220-0007", resp.ReceiptNumber)
	assert.Equal(t, string(domain.StatusActive), resp.Status)
	require.NotNil(t, subs.created)
	assert.Equal(t, domain.StatusActive, subs.created.Status)
}

func TestExecute_ValidationFailures(t *testing.T) {
	uc := newTestUseCase(&fakeSubRepo{}, &fakeTimeslotRepo{}, &fakeSeatRepo{}, &fakeStudentRepo{}, date(2026, 2, 20))

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero student", func(r *Request) { r.StudentID = 0 }},
		{"zero seat", func(r *Request) { r.SeatID = 0 }},
		{"zero timeslot", func(r *Request) { r.TimeslotID = 0 }},
		{"zero start date", func(r *Request) { r.StartDate = time.Time{} }},
		{"end before start", func(r *Request) { r.EndDate = r.StartDate.AddDate(0, 0, -1) }},
		{"end equals start", func(r *Request) { r.EndDate = r.StartDate }},
		{"zero amount", func(r *Request) { r.AmountPaid = 0 }},
		{"negative amount", func(r *Request) { r.AmountPaid = -100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_StudentGate(t *testing.T) {
	slots := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: morningSlot()}}
	seats := &fakeSeatRepo{seat: &domain.Seat{ID: 5, GenderRestriction: domain.GenderAny, IsActive: true}}

	t.Run("not found", func(t *testing.T) {
		students := &fakeStudentRepo{err: studentRepo.ErrStudentNotFound}
		uc := newTestUseCase(&fakeSubRepo{nextSeq: 1}, slots, seats, students, date(2026, 2, 20))

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrStudentNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		students := &fakeStudentRepo{student: &domain.Student{ID: 10, Gender: domain.GenderMale, IsActive: false}}
		uc := newTestUseCase(&fakeSubRepo{nextSeq: 1}, slots, seats, students, date(2026, 2, 20))

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrStudentInactive)
	})
}

func TestExecute_InactiveTimeslotLooksAbsent(t *testing.T) {
	slot := morningSlot()
	slot.IsActive = false
	slots := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: slot}}
	seats := &fakeSeatRepo{seat: &domain.Seat{ID: 5, GenderRestriction: domain.GenderAny, IsActive: true}}
	students := &fakeStudentRepo{student: &domain.Student{ID: 10, Gender: domain.GenderMale, IsActive: true}}

	uc := newTestUseCase(&fakeSubRepo{nextSeq: 1}, slots, seats, students, date(2026, 2, 20))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeslotNotFound)
}

func TestExecute_GenderRestriction(t *testing.T) {
	slots := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: morningSlot()}}
	seats := &fakeSeatRepo{seat: &domain.Seat{ID: 5, GenderRestriction: domain.GenderFemale, IsActive: true}}
	students := &fakeStudentRepo{student: &domain.Student{ID: 10, Gender: domain.GenderMale, IsActive: true}}

	uc := newTestUseCase(&fakeSubRepo{nextSeq: 1}, slots, seats, students, date(2026, 2, 20))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSeatRestricted)
}

func TestExecute_DuplicatePlanConflict(t *testing.T) {
	existing := &domain.Subscription{
		ID:         100,
		StudentID:  10,
		SeatID:     5,
		TimeslotID: 1,
		StartDate:  date(2026, 3, 1),
		EndDate:    date(2026, 5, 31),
		Status:     domain.StatusActive,
	}

	subs := &fakeSubRepo{
		nextSeq:              1,
		overlappingByStudent: []*domain.Subscription{existing},
		overlappingBySeat:    []*domain.Subscription{existing},
	}
	slots := &fakeTimeslotRepo{slots: map[int64]*domain.Timeslot{1: morningSlot()}}
	seats := &fakeSeatRepo{seat: &domain.Seat{ID: 5, GenderRestriction: domain.GenderAny, IsActive: true}}
	students := &fakeStudentRepo{student: &domain.Student{ID: 10, Gender: domain.GenderMale, IsActive: true}}

	uc := newTestUseCase(subs, slots, seats, students, date(2026, 2, 20))

	_, err := uc.Execute(context.Background(), validRequest())

	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, domain.ConflictDuplicatePlan, conflictErr.Conflict.Kind)
	assert.Equal(t, int64(100), conflictErr.Conflict.SubscriptionID)
	assert.Nil(t, subs.created)
}
