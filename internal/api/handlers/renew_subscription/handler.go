package renew_subscription

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/domain"
	renewSubscription "github.com/m04kA/SHM-SeatService/internal/usecase/renew_subscription"
)

const (
	msgInvalidSubscriptionID = "некорректный ID абонемента"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgNotFound              = "абонемент не найден"
	msgCancelled             = "абонемент отменён и не может быть продлён"
	msgStudentInactive       = "студент неактивен"
	msgTimeslotNotFound      = "таймслот не найден"
	msgConflict              = "продление конфликтует с существующим абонементом"
)

type Handler struct {
	useCase RenewSubscriptionUseCase
	logger  Logger
}

func NewHandler(useCase RenewSubscriptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/subscriptions/{subscriptionId}/renew
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	subscriptionID, err := strconv.ParseInt(vars["subscriptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /subscriptions/{id}/renew - Invalid subscription ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSubscriptionID)
		return
	}

	// Тело запроса опционально: пустое тело означает значения по умолчанию
	var req RenewSubscriptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /subscriptions/{id}/renew - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &renewSubscription.Request{
		SubscriptionID: subscriptionID,
		Months:         req.Months,
		Amount:         req.Amount,
	})
	if err != nil {
		var conflictErr *domain.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /subscriptions/{id}/renew - Conflict: subscription_id=%d, kind=%s",
				subscriptionID, conflictErr.Conflict.Kind)
			handlers.RespondJSON(w, http.StatusConflict, FromConflict(msgConflict, conflictErr.Conflict))

		case errors.Is(err, renewSubscription.ErrSubscriptionNotFound):
			h.logger.Warn("POST /subscriptions/{id}/renew - Not found: subscription_id=%d", subscriptionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, renewSubscription.ErrSubscriptionCancelled):
			h.logger.Warn("POST /subscriptions/{id}/renew - Cancelled: subscription_id=%d", subscriptionID)
			handlers.RespondBadRequest(w, msgCancelled)

		case errors.Is(err, renewSubscription.ErrStudentInactive):
			h.logger.Warn("POST /subscriptions/{id}/renew - Student inactive: subscription_id=%d", subscriptionID)
			handlers.RespondBadRequest(w, msgStudentInactive)

		case errors.Is(err, renewSubscription.ErrTimeslotNotFound):
			h.logger.Warn("POST /subscriptions/{id}/renew - Timeslot not found: subscription_id=%d", subscriptionID)
			handlers.RespondNotFound(w, msgTimeslotNotFound)

		case errors.Is(err, renewSubscription.ErrInvalidInput):
			h.logger.Warn("POST /subscriptions/{id}/renew - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /subscriptions/{id}/renew - Failed: subscription_id=%d, error=%v",
				subscriptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /subscriptions/{id}/renew - Renewed successfully: subscription_id=%d, new_id=%d, receipt=%s",
		subscriptionID, result.ID, result.ReceiptNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
