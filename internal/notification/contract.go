package notification

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	"github.com/m04kA/SHM-SeatService/internal/integrations/notifyservice"
)

// SubscriptionRepository лента напоминаний из хранилища абонементов
type SubscriptionRepository interface {
	GetExpiringWithin(ctx context.Context, days int) ([]*domain.ExpiryNotice, error)
	GetExpiredWithin(ctx context.Context, days int) ([]*domain.ExpiryNotice, error)
}

// NotifyClient клиент сервиса рассылки сообщений
type NotifyClient interface {
	SendWithGracefulDegradation(ctx context.Context, msg *notifyservice.Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
