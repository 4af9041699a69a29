package get_timeslot_occupancy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/service/timeslots"
)

const (
	msgInvalidTimeslotID = "некорректный ID таймслота"
	msgNotFound          = "таймслот не найден"
)

type Handler struct {
	service TimeslotService
	logger  Logger
}

func NewHandler(service TimeslotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/timeslots/{timeslotId}/occupancy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	timeslotID, err := strconv.ParseInt(vars["timeslotId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /timeslots/{id}/occupancy - Invalid timeslot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeslotID)
		return
	}

	result, err := h.service.Occupancy(r.Context(), timeslotID)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrTimeslotNotFound):
			h.logger.Warn("GET /timeslots/{id}/occupancy - Not found: timeslot_id=%d", timeslotID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /timeslots/{id}/occupancy - Failed: timeslot_id=%d, error=%v", timeslotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /timeslots/{id}/occupancy - Retrieved: timeslot_id=%d, rate=%.1f%%",
		timeslotID, result.OccupancyRate)
	handlers.RespondJSON(w, http.StatusOK, result)
}
