package get_subscription

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	GetByID(ctx context.Context, id int64) (*models.SubscriptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
