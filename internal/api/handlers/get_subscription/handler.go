package get_subscription

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

// Handle GET /api/v1/subscriptions/{subscriptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	subscriptionID, err := strconv.ParseInt(vars["subscriptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /subscriptions/{id} - Invalid subscription ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSubscriptionID)
		return
	}

	sub, err := h.service.GetByID(r.Context(), subscriptionID)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrSubscriptionNotFound):
			h.logger.Warn("GET /subscriptions/{id} - Not found: subscription_id=%d", subscriptionID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /subscriptions/{id} - Failed: subscription_id=%d, error=%v", subscriptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /subscriptions/{id} - Retrieved successfully: subscription_id=%d", subscriptionID)
	handlers.RespondJSON(w, http.StatusOK, sub)
}
