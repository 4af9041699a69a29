package seat

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	"github.com/m04kA/SHM-SeatService/pkg/dbmetrics"
	"github.com/m04kA/SHM-SeatService/pkg/psqlbuilder"
)

const table = "seats"

var columns = []string{
	"id",
	"row_number",
	"gender_restriction",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с местами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое место
func (r *Repository) Create(ctx context.Context, s *domain.Seat) (*domain.Seat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("row_number", "gender_restriction", "is_active").
		Values(s.RowNumber, s.GenderRestriction, s.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает место по ID
// Внутри транзакции блокирует строку (FOR UPDATE) - смена ограничения
// и деактивация перепроверяют занятость на момент записи
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Seat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Seat
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.RowNumber,
		&s.GenderRestriction,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSeatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan seat: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// ListFilter фильтр списка мест
type ListFilter struct {
	Gender     *domain.Gender // места, доступные студенту этого пола (ограничение = gender или any)
	ActiveOnly bool
}

// List получает места, упорядоченные по ID (порядок строк на карте зала)
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*domain.Seat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("id ASC")

	if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Gender != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{
			"gender_restriction": []domain.Gender{*filter.Gender, domain.GenderAny},
		})
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

	seats := make([]*domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&s.ID,
			&s.RowNumber,
			&s.GenderRestriction,
			&s.IsActive,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		seats = append(seats, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return seats, nil
}

// UpdateGenderRestriction меняет гендерное ограничение места
// Вызывающий обязан перепроверить занятость в той же транзакции
func (r *Repository) UpdateGenderRestriction(ctx context.Context, id int64, g domain.Gender) error {
	return r.update(ctx, id, "UpdateGenderRestriction", func(b squirrel.UpdateBuilder) squirrel.UpdateBuilder {
		return b.Set("gender_restriction", g)
	})
}

// Deactivate мягко удаляет место (места физически не удаляются никогда)
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	return r.update(ctx, id, "Deactivate", func(b squirrel.UpdateBuilder) squirrel.UpdateBuilder {
		return b.Set("is_active", false)
	})
}

func (r *Repository) update(ctx context.Context, id int64, op string, set func(squirrel.UpdateBuilder) squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := set(psqlbuilder.Update(table)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrSeatNotFound
	}

	return nil
}
