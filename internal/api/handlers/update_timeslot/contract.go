package update_timeslot

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/service/timeslots/models"
)

type TimeslotService interface {
	Update(ctx context.Context, id int64, req *models.UpdateTimeslotRequest) (*models.TimeslotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
