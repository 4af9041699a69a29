package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	"github.com/m04kA/SHM-SeatService/pkg/dbmetrics"
	"github.com/m04kA/SHM-SeatService/pkg/psqlbuilder"
)

const table = "timeslots"

var columns = []string{
	"id",
	"name",
	"start_time",
	"end_time",
	"price",
	"duration_months",
	"lockers_available",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с таймслотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория таймслотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый таймслот
func (r *Repository) Create(ctx context.Context, t *domain.Timeslot) (*domain.Timeslot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"name",
			"start_time",
			"end_time",
			"price",
			"duration_months",
			"lockers_available",
			"is_active",
		).
		Values(
			t.Name,
			t.StartTime,
			t.EndTime,
			t.Price,
			t.DurationMonths,
			t.LockersAvailable,
			t.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, t.Name)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByID получает таймслот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Timeslot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanOne(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTimeslotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan timeslot: %v", ErrScanRow, err)
	}

	return t, nil
}

// List получает таймслоты, упорядоченные по времени начала
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.Timeslot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_time ASC, id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Timeslot, 0)
	for rows.Next() {
		t, err := scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Update обновляет параметры таймслота
func (r *Repository) Update(ctx context.Context, id int64, t *domain.Timeslot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", t.Name).
		Set("start_time", t.StartTime).
		Set("end_time", t.EndTime).
		Set("price", t.Price).
		Set("duration_months", t.DurationMonths).
		Set("lockers_available", t.LockersAvailable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: %s", ErrDuplicateName, t.Name)
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTimeslotNotFound
	}

	return nil
}

// Deactivate мягко удаляет таймслот
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTimeslotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOne(row rowScanner) (*domain.Timeslot, error) {
	var t domain.Timeslot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.StartTime,
		&t.EndTime,
		&t.Price,
		&t.DurationMonths,
		&t.LockersAvailable,
		&t.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return &t, nil
}
