package get_student_subscriptions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/service/subscriptions"
)

const (
	msgInvalidStudentID = "некорректный ID студента"
	msgStudentNotFound  = "студент не найден"
)

type Handler struct {
	service SubscriptionService
	logger  Logger
}

func NewHandler(service SubscriptionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/students/{studentId}/subscriptions?activeOnly=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studentID, err := strconv.ParseInt(vars["studentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /students/{id}/subscriptions - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	subs, err := h.service.GetByStudent(r.Context(), studentID, activeOnly)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrStudentNotFound):
			h.logger.Warn("GET /students/{id}/subscriptions - Student not found: student_id=%d", studentID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		default:
			h.logger.Error("GET /students/{id}/subscriptions - Failed: student_id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{id}/subscriptions - Retrieved %d subscriptions: student_id=%d",
		len(subs.Subscriptions), studentID)
	handlers.RespondJSON(w, http.StatusOK, subs)
}
