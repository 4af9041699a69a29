package update_seat_restriction

import (
	"context"

	"github.com/m04kA/SHM-SeatService/internal/service/seats/models"
)

type SeatService interface {
	UpdateGenderRestriction(ctx context.Context, id int64, req *models.UpdateRestrictionRequest) (*models.SeatResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
