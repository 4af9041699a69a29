package deactivate_seat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/service/seats"
)

const (
	msgInvalidSeatID = "некорректный ID места"
	msgNotFound      = "место не найдено"
	msgOccupied      = "на месте есть текущие абонементы"
)

type Handler struct {
	service SeatService
	logger  Logger
}

func NewHandler(service SeatService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/seats/{seatId}/deactivate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	seatID, err := strconv.ParseInt(vars["seatId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /seats/{id}/deactivate - Invalid seat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSeatID)
		return
	}

	if err := h.service.Deactivate(r.Context(), seatID); err != nil {
		switch {
		case errors.Is(err, seats.ErrSeatNotFound):
			h.logger.Warn("PATCH /seats/{id}/deactivate - Not found: seat_id=%d", seatID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, seats.ErrSeatOccupied):
			h.logger.Warn("PATCH /seats/{id}/deactivate - Occupied: seat_id=%d", seatID)
			handlers.RespondConflict(w, msgOccupied)

		default:
			h.logger.Error("PATCH /seats/{id}/deactivate - Failed: seat_id=%d, error=%v", seatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /seats/{id}/deactivate - Deactivated successfully: seat_id=%d", seatID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
