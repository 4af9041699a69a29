package timeslots

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	seatRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/seat"
)

// TimeslotRepository интерфейс репозитория таймслотов
type TimeslotRepository interface {
	Create(ctx context.Context, t *domain.Timeslot) (*domain.Timeslot, error)
	GetByID(ctx context.Context, id int64) (*domain.Timeslot, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Timeslot, error)
	Update(ctx context.Context, id int64, t *domain.Timeslot) error
	Deactivate(ctx context.Context, id int64) error
}

// SeatRepository интерфейс репозитория мест
// Нужен для знаменателя заполняемости (число активных мест)
type SeatRepository interface {
	List(ctx context.Context, filter seatRepo.ListFilter) ([]*domain.Seat, error)
}

// SubscriptionRepository интерфейс репозитория абонементов
type SubscriptionRepository interface {
	CountCurrentSeatsByTimeslot(ctx context.Context, timeslotID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
