package check_subscription

import (
	"context"

	checkSubscription "github.com/m04kA/SHM-SeatService/internal/usecase/check_subscription"
)

type CheckSubscriptionUseCase interface {
	Execute(ctx context.Context, req *checkSubscription.Request) (*checkSubscription.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
