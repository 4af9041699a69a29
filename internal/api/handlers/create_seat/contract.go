package create_seat

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/service/seats/models"
)

type SeatService interface {
	Create(ctx context.Context, req *models.CreateSeatRequest) (*models.SeatResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
