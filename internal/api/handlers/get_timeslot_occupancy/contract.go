package get_timeslot_occupancy

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/service/timeslots/models"
)

type TimeslotService interface {
	Occupancy(ctx context.Context, id int64) (*models.OccupancyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
