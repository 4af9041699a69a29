package create_seat

import (
	"errors"
	"net/http"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/service/seats"
	"github.com/m04kA/SHM-SeatService/internal/service/seats/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/seats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSeatRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /seats - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, seats.ErrInvalidInput):
			h.logger.Warn("POST /seats - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /seats - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /seats - Seat created successfully: seat_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
