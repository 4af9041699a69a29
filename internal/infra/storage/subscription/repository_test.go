package subscription

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	"github.com/m04kA/SHM-SeatService/pkg/ptr"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func subscriptionRows(sub *domain.Subscription) *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(
		sub.ID, sub.StudentID, sub.SeatID, sub.TimeslotID,
		sub.StartDate, sub.EndDate, sub.AmountPaid,
		sub.ReceiptNumber, string(sub.Status),
		time.Now(), time.Now(),
	)
}

func TestCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO student_subscriptions")).
		WithArgs(int64(10), int64(5), int64(1),
			date(2026, 3, 1), date(2026, 5, 31), 1500.0,
			"RCP-20260220-0007", domain.StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(100), now, now))

	created, err := repo.Create(context.Background(), &domain.Subscription{
		StudentID:     10,
		SeatID:        5,
		TimeslotID:    1,
		StartDate:     date(2026, 3, 1),
		EndDate:       date(2026, 5, 31),
		AmountPaid:    1500,
		ReceiptNumber: "RCP-20260220-0007",
		Status:        domain.StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateReceiptNumber(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO student_subscriptions")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Subscription{
		ReceiptNumber: "RCP-20260220-0007",
		Status:        domain.StatusActive,
	})
	assert.ErrorIs(t, err, ErrReceiptNumberTaken)
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT .+ FROM student_subscriptions WHERE id = ").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestGetOverlapping_NoLockOutsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	sub := &domain.Subscription{
		ID: 100, StudentID: 10, SeatID: 5, TimeslotID: 1,
		StartDate: date(2026, 3, 1), EndDate: date(2026, 5, 31),
		AmountPaid: 1500, ReceiptNumber: "RCP-20260220-0007",
		Status: domain.StatusActive,
	}

	// Вне транзакции суффикс FOR UPDATE не добавляется
	mock.ExpectQuery("SELECT .+ FROM student_subscriptions WHERE .+ ORDER BY id ASC$").
		WithArgs(string(domain.StatusActive), date(2026, 4, 1), date(2026, 6, 30), int64(10)).
		WillReturnRows(subscriptionRows(sub))

	subs, err := repo.GetOverlapping(context.Background(), domain.OverlapFilter{
		StudentID: ptr.Ptr(int64(10)),
		StartDate: date(2026, 4, 1),
		EndDate:   date(2026, 6, 30),
	})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(100), subs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE student_subscriptions")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestNextReceiptSequence(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(CAST(RIGHT(receipt_number, 4) AS INTEGER)), 0) + 1 FROM student_subscriptions")).
		WithArgs("RCP-20260901-%").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(8))

	seq, err := repo.NextReceiptSequence(context.Background(), date(2026, 9, 1))
	require.NoError(t, err)
	assert.Equal(t, 8, seq)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExpiringWithin(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "full_name", "mobile", "seat_id", "name", "end_date"}).
		AddRow(int64(100), int64(10), "Иванов Иван", "+79001234567", int64(5), "Morning", date(2026, 9, 5))

	mock.ExpectQuery("SELECT .+ FROM student_subscriptions s JOIN students st ON .+ JOIN timeslots t ON ").
		WithArgs(string(domain.StatusActive), 7).
		WillReturnRows(rows)

	notices, err := repo.GetExpiringWithin(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "Morning", notices[0].TimeslotName)
	assert.Equal(t, date(2026, 9, 5), notices[0].EndDate)
}
