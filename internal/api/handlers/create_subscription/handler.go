package create_subscription

import (
	"errors"
	"net/http"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/domain"
	createSubscription "github.com/m04kA/SHM-SeatService/internal/usecase/create_subscription"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStudentNotFound    = "студент не найден"
	msgStudentInactive    = "студент неактивен"
	msgSeatNotFound       = "место не найдено"
	msgSeatRestricted     = "место недоступно для студентов этого пола"
	msgTimeslotNotFound   = "таймслот не найден"
	msgConflict           = "абонемент конфликтует с существующим"
)

type Handler struct {
	useCase CreateSubscriptionUseCase
	logger  Logger
}

func NewHandler(useCase CreateSubscriptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/subscriptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSubscriptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /subscriptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /subscriptions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *domain.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /subscriptions - Conflict: student_id=%d, seat_id=%d, kind=%s",
				req.StudentID, req.SeatID, conflictErr.Conflict.Kind)
			handlers.RespondJSON(w, http.StatusConflict, FromConflict(msgConflict, conflictErr.Conflict))

		case errors.Is(err, createSubscription.ErrStudentNotFound):
			h.logger.Warn("POST /subscriptions - Student not found: student_id=%d", req.StudentID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, createSubscription.ErrStudentInactive):
			h.logger.Warn("POST /subscriptions - Student inactive: student_id=%d", req.StudentID)
			handlers.RespondBadRequest(w, msgStudentInactive)

		case errors.Is(err, createSubscription.ErrSeatNotFound):
			h.logger.Warn("POST /subscriptions - Seat not found: seat_id=%d", req.SeatID)
			handlers.RespondNotFound(w, msgSeatNotFound)

		case errors.Is(err, createSubscription.ErrSeatRestricted):
			h.logger.Warn("POST /subscriptions - Seat restricted: student_id=%d, seat_id=%d", req.StudentID, req.SeatID)
			handlers.RespondBadRequest(w, msgSeatRestricted)

		case errors.Is(err, createSubscription.ErrTimeslotNotFound):
			h.logger.Warn("POST /subscriptions - Timeslot not found: timeslot_id=%d", req.TimeslotID)
			handlers.RespondNotFound(w, msgTimeslotNotFound)

		case errors.Is(err, createSubscription.ErrInvalidInput):
			h.logger.Warn("POST /subscriptions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /subscriptions - Failed to create subscription: student_id=%d, error=%v",
				req.StudentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /subscriptions - Subscription created successfully: subscription_id=%d, receipt=%s",
		result.ID, result.ReceiptNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
