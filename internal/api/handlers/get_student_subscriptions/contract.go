package get_student_subscriptions

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/service/subscriptions/models"
)

type SubscriptionService interface {
	GetByStudent(ctx context.Context, studentID int64, activeOnly bool) (*models.SubscriptionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
