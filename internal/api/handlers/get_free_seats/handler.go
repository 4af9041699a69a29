package get_free_seats

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
	"github.com/m04kA/SHM-SeatService/internal/domain"
	getFreeSeats "github.com/m04kA/SHM-SeatService/internal/usecase/get_free_seats"
)

const (
	msgInvalidTimeslotID = "некорректный ID таймслота"
	msgInvalidGender     = "некорректное значение gender, ожидается male или female"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTimeslotNotFound  = "таймслот не найден"
)

type Handler struct {
	useCase GetFreeSeatsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeSeatsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/seats/free?gender=&timeslotId=&startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	timeslotID, err := strconv.ParseInt(query.Get("timeslotId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /seats/free - Invalid timeslot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeslotID)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, query.Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /seats/free - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, query.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /seats/free - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getFreeSeats.Request{
		TimeslotID: timeslotID,
		StartDate:  startDate,
		EndDate:    endDate,
	}

	if raw := query.Get("gender"); raw != "" {
		gender := domain.Gender(raw)
		if !gender.ValidForStudent() {
			h.logger.Warn("GET /seats/free - Invalid gender: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidGender)
			return
		}
		req.Gender = &gender
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getFreeSeats.ErrTimeslotNotFound):
			h.logger.Warn("GET /seats/free - Timeslot not found: timeslot_id=%d", timeslotID)
			handlers.RespondNotFound(w, msgTimeslotNotFound)

		case errors.Is(err, getFreeSeats.ErrInvalidInput):
			h.logger.Warn("GET /seats/free - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /seats/free - Failed: timeslot_id=%d, error=%v", timeslotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /seats/free - Retrieved %d free seats: timeslot_id=%d", len(result.Seats), timeslotID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
