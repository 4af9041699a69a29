package list_timeslots

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/service/timeslots/models"
)

type TimeslotService interface {
	List(ctx context.Context, activeOnly bool) (*models.TimeslotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
