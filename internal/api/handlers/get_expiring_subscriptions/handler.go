package get_expiring_subscriptions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/service/subscriptions"
	"github.com/m04kA/SHM-SeatService/internal/service/subscriptions/models"
)

const (
	msgInvalidDays   = "некорректное значение days"
	msgInvalidWindow = "некорректное значение window, ожидается expiring или expired"

	defaultDays = 7

	windowExpiring = "expiring"
	windowExpired  = "expired"
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

// Handle GET /api/v1/subscriptions/expiring?days=N&window=expiring|expired
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	days := defaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.logger.Warn("GET /subscriptions/expiring - Invalid days: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		days = parsed
	}

	window := r.URL.Query().Get("window")
	if window == "" {
		window = windowExpiring
	}

	var notices *models.ExpiryNoticeListResponse
	var err error

	switch window {
	case windowExpiring:
		notices, err = h.service.ListExpiringSoon(r.Context(), days)
	case windowExpired:
		notices, err = h.service.ListExpired(r.Context(), days)
	default:
		h.logger.Warn("GET /subscriptions/expiring - Invalid window: %q", window)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrInvalidInput):
			h.logger.Warn("GET /subscriptions/expiring - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /subscriptions/expiring - Failed: window=%s, days=%d, error=%v", window, days, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /subscriptions/expiring - Retrieved %d notices: window=%s, days=%d",
		len(notices.Notices), window, days)
	handlers.RespondJSON(w, http.StatusOK, notices)
}
