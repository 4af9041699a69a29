package list_seats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/service/seats"
	"github.com/m04kA/SHM-SeatService/internal/service/seats/models"
)

const msgInvalidGender = "некорректное значение gender, ожидается male или female"

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

// Handle GET /api/v1/seats?gender=&activeOnly=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListSeatsRequest{
		ActiveOnly: r.URL.Query().Get("activeOnly") == "true",
	}

	if gender := r.URL.Query().Get("gender"); gender != "" {
		req.Gender = &gender
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, seats.ErrInvalidInput):
			h.logger.Warn("GET /seats - Invalid gender filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGender)

		default:
			h.logger.Error("GET /seats - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /seats - Retrieved %d seats", len(result.Seats))
	handlers.RespondJSON(w, http.StatusOK, result)
}
