package get_free_seats

import (
	"context"

	getFreeSeats "github.com/m04kA/SHM-SeatService/internal/usecase/get_free_seats"
)

type GetFreeSeatsUseCase interface {
	Execute(ctx context.Context, req *getFreeSeats.Request) (*getFreeSeats.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
