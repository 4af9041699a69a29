package get_free_seats

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	seatRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/seat"
	timeslotRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/timeslot"
)

// UseCase use case подбора свободных мест
// Место свободно, если среди текущих абонементов на него нет ни одного,
// чей таймслот пересекается по времени суток с запрошенным
type UseCase struct {
	seatRepo     SeatRepository
	subRepo      SubscriptionRepository
	timeslotRepo TimeslotRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	seatRepo SeatRepository,
	subRepo SubscriptionRepository,
	timeslotRepo TimeslotRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		seatRepo:     seatRepo,
		subRepo:      subRepo,
		timeslotRepo: timeslotRepo,
		logger:       logger,
	}
}

// Execute выполняет подбор свободных мест
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeSeats: timeslot=%d, dates=%s..%s",
		req.TimeslotID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeSeats: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запрошенный таймслот
	slot, err := uc.timeslotRepo.GetByID(ctx, req.TimeslotID)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeslotNotFound) {
			uc.logger.Warn("GetFreeSeats: timeslot id=%d not found", req.TimeslotID)
			return nil, ErrTimeslotNotFound
		}
		uc.logger.Error("GetFreeSeats: failed to get timeslot id=%d: %v", req.TimeslotID, err)
		return nil, fmt.Errorf("%w: failed to get timeslot: %v", ErrInternal, err)
	}

	if !slot.IsActive {
		uc.logger.Warn("GetFreeSeats: timeslot id=%d is inactive", req.TimeslotID)
		return nil, ErrTimeslotNotFound
	}

	window := slot.Window()
	if err := window.Validate(); err != nil {
		uc.logger.Error("GetFreeSeats: timeslot id=%d has malformed window: %v", req.TimeslotID, err)
		return nil, fmt.Errorf("%w: malformed timeslot window: %v", ErrInternal, err)
	}

	// 3. Активные места, доступные студенту данного пола
	seats, err := uc.seatRepo.List(ctx, seatRepo.ListFilter{
		Gender:     req.Gender,
		ActiveOnly: true,
	})
	if err != nil {
		uc.logger.Error("GetFreeSeats: failed to list seats: %v", err)
		return nil, fmt.Errorf("%w: failed to list seats: %v", ErrInternal, err)
	}

	// 4. Текущие абонементы, пересекающие запрошенный диапазон дат
	subs, err := uc.subRepo.GetCurrentOverlapping(ctx, domain.OverlapFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		uc.logger.Error("GetFreeSeats: failed to get current subscriptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get current subscriptions: %v", ErrInternal, err)
	}

	slots, err := uc.timeslotRepo.List(ctx, false)
	if err != nil {
		uc.logger.Error("GetFreeSeats: failed to list timeslots: %v", err)
		return nil, fmt.Errorf("%w: failed to list timeslots: %v", ErrInternal, err)
	}

	slotsByID := make(map[int64]*domain.Timeslot, len(slots))
	for _, s := range slots {
		slotsByID[s.ID] = s
	}

	// 5. Место занято, если хотя бы один его абонемент пересекается
	// по времени суток с запрошенным окном
	occupied := make(map[int64]bool)
	for _, sub := range subs {
		subSlot, ok := slotsByID[sub.TimeslotID]
		if !ok {
			uc.logger.Error("GetFreeSeats: unknown timeslot id=%d on subscription id=%d", sub.TimeslotID, sub.ID)
			return nil, fmt.Errorf("%w: unknown timeslot id=%d", ErrInternal, sub.TimeslotID)
		}

		overlaps, err := window.Overlaps(subSlot.Window())
		if err != nil {
			uc.logger.Error("GetFreeSeats: window comparison failed for subscription id=%d: %v", sub.ID, err)
			return nil, fmt.Errorf("%w: window comparison failed: %v", ErrInternal, err)
		}
		if overlaps {
			occupied[sub.SeatID] = true
		}
	}

	resp := &Response{Seats: make([]FreeSeat, 0, len(seats))}
	for _, seat := range seats {
		if occupied[seat.ID] {
			continue
		}
		resp.Seats = append(resp.Seats, FreeSeat{
			ID:                seat.ID,
			RowNumber:         seat.RowNumber,
			GenderRestriction: string(seat.GenderRestriction),
		})
	}

	uc.logger.Info("GetFreeSeats: %d of %d seats free for timeslot=%d", len(resp.Seats), len(seats), req.TimeslotID)
	return resp, nil
}
