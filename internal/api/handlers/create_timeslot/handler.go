package create_timeslot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/service/timeslots"
	"github.com/m04kA/SHM-SeatService/internal/service/timeslots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDuplicateName      = "таймслот с таким названием уже существует"
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

// Handle POST /api/v1/timeslots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTimeslotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /timeslots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrDuplicateName):
			h.logger.Warn("POST /timeslots - Duplicate name: %q", req.Name)
			handlers.RespondConflict(w, msgDuplicateName)

		case errors.Is(err, timeslots.ErrInvalidInput):
			h.logger.Warn("POST /timeslots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /timeslots - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /timeslots - Timeslot created successfully: timeslot_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
