package check_subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	timeslotRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/timeslot"
	"github.com/m04kA/SHM-SeatService/pkg/ptr"
)

// UseCase use case предварительной проверки кандидата
// Читает без транзакции и блокировок: результат носит рекомендательный
// характер, создание всё равно перепроверяет в сериализуемой транзакции
type UseCase struct {
	subRepo      SubscriptionRepository
	timeslotRepo TimeslotRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	subRepo SubscriptionRepository,
	timeslotRepo TimeslotRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		subRepo:      subRepo,
		timeslotRepo: timeslotRepo,
		logger:       logger,
	}
}

// Execute выполняет проверку кандидата на конфликты расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckSubscription: student=%d, seat=%d, timeslot=%d, dates=%s..%s",
		req.StudentID, req.SeatID, req.TimeslotID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSubscription: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем таймслот кандидата
	slot, err := uc.timeslotRepo.GetByID(ctx, req.TimeslotID)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeslotNotFound) {
			uc.logger.Warn("CheckSubscription: timeslot id=%d not found", req.TimeslotID)
			return nil, ErrTimeslotNotFound
		}
		uc.logger.Error("CheckSubscription: failed to get timeslot id=%d: %v", req.TimeslotID, err)
		return nil, fmt.Errorf("%w: failed to get timeslot: %v", ErrInternal, err)
	}

	if !slot.IsActive {
		uc.logger.Warn("CheckSubscription: timeslot id=%d is inactive", req.TimeslotID)
		return nil, ErrTimeslotNotFound
	}

	// 3. Читаем пересекающиеся абонементы студента и места
	studentSubs, err := uc.subRepo.GetOverlapping(ctx, domain.OverlapFilter{
		StudentID: ptr.Ptr(req.StudentID),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ExcludeID: req.ExcludeID,
	})
	if err != nil {
		uc.logger.Error("CheckSubscription: failed to get student subscriptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get student subscriptions: %v", ErrInternal, err)
	}

	seatSubs, err := uc.subRepo.GetOverlapping(ctx, domain.OverlapFilter{
		SeatID:    ptr.Ptr(req.SeatID),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ExcludeID: req.ExcludeID,
	})
	if err != nil {
		uc.logger.Error("CheckSubscription: failed to get seat subscriptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get seat subscriptions: %v", ErrInternal, err)
	}

	slots, err := uc.timeslotRepo.List(ctx, false)
	if err != nil {
		uc.logger.Error("CheckSubscription: failed to list timeslots: %v", err)
		return nil, fmt.Errorf("%w: failed to list timeslots: %v", ErrInternal, err)
	}

	slotsByID := make(map[int64]*domain.Timeslot, len(slots))
	for _, s := range slots {
		slotsByID[s.ID] = s
	}

	// 4. Три проверки конфликтов
	candidate := domain.Candidate{
		ExcludeID:  req.ExcludeID,
		StudentID:  req.StudentID,
		SeatID:     req.SeatID,
		TimeslotID: req.TimeslotID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}

	conflict, err := domain.DetectConflicts(candidate, slot, studentSubs, seatSubs, slotsByID)
	if err != nil {
		uc.logger.Error("CheckSubscription: conflict detection failed: %v", err)
		return nil, fmt.Errorf("%w: conflict detection failed: %v", ErrInternal, err)
	}

	if conflict == nil {
		uc.logger.Info("CheckSubscription: candidate is schedulable")
		return &Response{Ok: true}, nil
	}

	uc.logger.Info("CheckSubscription: %s with subscription id=%d", conflict.Kind, conflict.SubscriptionID)
	return &Response{
		Ok: false,
		Conflict: &ConflictInfo{
			Kind:           string(conflict.Kind),
			SubscriptionID: conflict.SubscriptionID,
			StudentID:      conflict.StudentID,
			SeatID:         conflict.SeatID,
			TimeslotID:     conflict.TimeslotID,
			TimeslotName:   conflict.TimeslotName,
			StartDate:      conflict.StartDate,
			EndDate:        conflict.EndDate,
		},
	}, nil
}
