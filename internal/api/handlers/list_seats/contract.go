package list_seats

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/service/seats/models"
)

type SeatService interface {
	List(ctx context.Context, req *models.ListSeatsRequest) (*models.SeatListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
