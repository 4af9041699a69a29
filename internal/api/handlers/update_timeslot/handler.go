package update_timeslot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/service/timeslots"
	"github.com/m04kA/SHM-SeatService/internal/service/timeslots/models"
)

const (
	msgInvalidTimeslotID  = "некорректный ID таймслота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "таймслот не найден"
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

// Handle PATCH /api/v1/timeslots/{timeslotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	timeslotID, err := strconv.ParseInt(vars["timeslotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /timeslots/{id} - Invalid timeslot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeslotID)
		return
	}

	var req models.UpdateTimeslotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /timeslots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), timeslotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrTimeslotNotFound):
			h.logger.Warn("PATCH /timeslots/{id} - Not found: timeslot_id=%d", timeslotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, timeslots.ErrDuplicateName):
			h.logger.Warn("PATCH /timeslots/{id} - Duplicate name: timeslot_id=%d", timeslotID)
			handlers.RespondConflict(w, msgDuplicateName)

		case errors.Is(err, timeslots.ErrInvalidInput):
			h.logger.Warn("PATCH /timeslots/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /timeslots/{id} - Failed: timeslot_id=%d, error=%v", timeslotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /timeslots/{id} - Updated successfully: timeslot_id=%d", timeslotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
