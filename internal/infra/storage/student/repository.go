package student

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	"github.com/m04kA/SHM-SeatService/pkg/dbmetrics"
	"github.com/m04kA/SHM-SeatService/pkg/psqlbuilder"
)

// Repository read-only доступ к таблице студентов
// CRUD студентов принадлежит системе приёма; здесь нужны только
// пол и флаг активности для проверок при создании абонемента
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория студентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает студента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"full_name",
		"gender",
		"mobile",
		"is_active",
	).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Student
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.FullName,
		&s.Gender,
		&s.Mobile,
		&s.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan student: %v", ErrScanRow, err)
	}

	return &s, nil
}
