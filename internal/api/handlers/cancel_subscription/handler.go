package cancel_subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/service/subscriptions"
)

const (
	msgInvalidSubscriptionID = "некорректный ID абонемента"
	msgNotFound              = "абонемент не найден"
	msgCannotCancel          = "абонемент уже отменён"
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

// Handle PATCH /api/v1/subscriptions/{subscriptionId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	subscriptionID, err := strconv.ParseInt(vars["subscriptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /subscriptions/{id}/cancel - Invalid subscription ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSubscriptionID)
		return
	}

	if err := h.service.Cancel(r.Context(), subscriptionID); err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrSubscriptionNotFound):
			h.logger.Warn("PATCH /subscriptions/{id}/cancel - Not found: subscription_id=%d", subscriptionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, subscriptions.ErrCannotCancel):
			h.logger.Warn("PATCH /subscriptions/{id}/cancel - Already cancelled: subscription_id=%d", subscriptionID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /subscriptions/{id}/cancel - Failed: subscription_id=%d, error=%v",
				subscriptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /subscriptions/{id}/cancel - Cancelled successfully: subscription_id=%d", subscriptionID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
