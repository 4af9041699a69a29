package deactivate_timeslot

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

// Handle PATCH /api/v1/timeslots/{timeslotId}/deactivate
// Существующие абонементы доживают до конца срока
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	timeslotID, err := strconv.ParseInt(vars["timeslotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /timeslots/{id}/deactivate - Invalid timeslot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeslotID)
		return
	}

	if err := h.service.Deactivate(r.Context(), timeslotID); err != nil {
		switch {
		case errors.Is(err, timeslots.ErrTimeslotNotFound):
			h.logger.Warn("PATCH /timeslots/{id}/deactivate - Not found: timeslot_id=%d", timeslotID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /timeslots/{id}/deactivate - Failed: timeslot_id=%d, error=%v", timeslotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /timeslots/{id}/deactivate - Deactivated successfully: timeslot_id=%d", timeslotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
