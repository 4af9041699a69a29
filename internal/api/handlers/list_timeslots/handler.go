package list_timeslots

import (
	"net/http"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
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

// Handle GET /api/v1/timeslots?activeOnly=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	result, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /timeslots - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /timeslots - Retrieved %d timeslots", len(result.Timeslots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
