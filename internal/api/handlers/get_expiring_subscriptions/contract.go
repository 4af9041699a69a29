package get_expiring_subscriptions

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	ListExpiringSoon(ctx context.Context, days int) (*models.ExpiryNoticeListResponse, error)
	ListExpired(ctx context.Context, days int) (*models.ExpiryNoticeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
