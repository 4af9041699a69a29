package renew_subscription

import (
	"context"
	"time"

	"github.com/m04kA/SHM-SeatService/internal/domain"
)

// SubscriptionRepository интерфейс репозитория абонементов
type SubscriptionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Subscription, error)
	Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error)
	GetOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Subscription, error)
	NextReceiptSequence(ctx context.Context, day time.Time) (int, error)
}

// TimeslotRepository интерфейс репозитория таймслотов
type TimeslotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Timeslot, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Timeslot, error)
}

// StudentRepository интерфейс репозитория студентов
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
