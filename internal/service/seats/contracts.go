package seats

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	seatRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/seat"
)

// SeatRepository интерфейс репозитория мест
type SeatRepository interface {
	Create(ctx context.Context, s *domain.Seat) (*domain.Seat, error)
	GetByID(ctx context.Context, id int64) (*domain.Seat, error)
	List(ctx context.Context, filter seatRepo.ListFilter) ([]*domain.Seat, error)
	UpdateGenderRestriction(ctx context.Context, id int64, g domain.Gender) error
	Deactivate(ctx context.Context, id int64) error
}

// SubscriptionRepository интерфейс репозитория абонементов
// Сервису мест нужна только информация о занятости
type SubscriptionRepository interface {
	CountCurrentBySeat(ctx context.Context, seatID int64) (int, error)
	ListCurrentSeatIDs(ctx context.Context) ([]int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
