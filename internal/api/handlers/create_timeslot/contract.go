package create_timeslot

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/service/timeslots/models"
)

type TimeslotService interface {
	Create(ctx context.Context, req *models.CreateTimeslotRequest) (*models.TimeslotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
