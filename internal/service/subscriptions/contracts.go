package subscriptions

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/domain"
)

// SubscriptionRepository интерфейс репозитория абонементов
type SubscriptionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Subscription, error)
	GetByStudent(ctx context.Context, studentID int64, activeOnly bool) ([]*domain.Subscription, error)
	Cancel(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	GetExpiringWithin(ctx context.Context, days int) ([]*domain.ExpiryNotice, error)
	GetExpiredWithin(ctx context.Context, days int) ([]*domain.ExpiryNotice, error)
}

// StudentRepository интерфейс репозитория студентов
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
