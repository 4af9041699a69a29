package check_subscription

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/domain"
)

// SubscriptionRepository интерфейс репозитория абонементов
type SubscriptionRepository interface {
	GetOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Subscription, error)
}

// TimeslotRepository интерфейс репозитория таймслотов
type TimeslotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Timeslot, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Timeslot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
