package check_subscription

import (
	"errors"
	"net/http"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	checkSubscription "github.com/m04kA/SHM-SeatService/internal/usecase/check_subscription"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTimeslotNotFound   = "таймслот не найден"
)

type Handler struct {
	useCase CheckSubscriptionUseCase
	logger  Logger
}

func NewHandler(useCase CheckSubscriptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/subscriptions/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckSubscriptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /subscriptions/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /subscriptions/check - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkSubscription.ErrTimeslotNotFound):
			h.logger.Warn("POST /subscriptions/check - Timeslot not found: timeslot_id=%d", req.TimeslotID)
			handlers.RespondNotFound(w, msgTimeslotNotFound)

		case errors.Is(err, checkSubscription.ErrInvalidInput):
			h.logger.Warn("POST /subscriptions/check - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /subscriptions/check - Failed: student_id=%d, error=%v", req.StudentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /subscriptions/check - Checked: student_id=%d, seat_id=%d, ok=%v",
		req.StudentID, req.SeatID, result.Ok)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
