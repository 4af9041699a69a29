package update_seat_restriction

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/service/seats"
	"github.com/m04kA/SHM-SeatService/internal/service/seats/models"
)

const (
	msgInvalidSeatID      = "некорректный ID места"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "место не найдено"
	msgOccupied           = "на месте есть текущие абонементы"
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

// Handle PATCH /api/v1/seats/{seatId}/restriction
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	seatID, err := strconv.ParseInt(vars["seatId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /seats/{id}/restriction - Invalid seat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSeatID)
		return
	}

	var req models.UpdateRestrictionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /seats/{id}/restriction - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateGenderRestriction(r.Context(), seatID, &req)
	if err != nil {
		switch {
		case errors.Is(err, seats.ErrSeatNotFound):
			h.logger.Warn("PATCH /seats/{id}/restriction - Not found: seat_id=%d", seatID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, seats.ErrSeatOccupied):
			h.logger.Warn("PATCH /seats/{id}/restriction - Occupied: seat_id=%d", seatID)
			handlers.RespondConflict(w, msgOccupied)

		case errors.Is(err, seats.ErrInvalidInput):
			h.logger.Warn("PATCH /seats/{id}/restriction - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /seats/{id}/restriction - Failed: seat_id=%d, error=%v", seatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /seats/{id}/restriction - Updated successfully: seat_id=%d, restriction=%s",
		seatID, result.GenderRestriction)
	handlers.RespondJSON(w, http.StatusOK, result)
}
