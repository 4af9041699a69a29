package create_subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	seatRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/seat"
	studentRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/student"
	timeslotRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/timeslot"
	"github.com/m04kA/SHM-SeatService/pkg/ptr"
)

// UseCase use case для создания абонемента
type UseCase struct {
	subRepo      SubscriptionRepository
	timeslotRepo TimeslotRepository
	seatRepo     SeatRepository
	studentRepo  StudentRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	subRepo SubscriptionRepository,
	timeslotRepo TimeslotRepository,
	seatRepo SeatRepository,
	studentRepo StudentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		subRepo:      subRepo,
		timeslotRepo: timeslotRepo,
		seatRepo:     seatRepo,
		studentRepo:  studentRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания абонемента
// Проверка конфликтов и вставка выполняются в одной сериализуемой транзакции,
// чтобы два конкурентных создания не прошли проверку одновременно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSubscription: student=%d, seat=%d, timeslot=%d, dates=%s..%s",
		req.StudentID, req.SeatID, req.TimeslotID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSubscription: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем студента и проверяем его статус
	student, err := uc.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, studentRepo.ErrStudentNotFound) {
			uc.logger.Warn("CreateSubscription: student id=%d not found", req.StudentID)
			return nil, ErrStudentNotFound
		}
		uc.logger.Error("CreateSubscription: failed to get student id=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	if !student.IsActive {
		uc.logger.Warn("CreateSubscription: student id=%d is inactive", req.StudentID)
		return nil, ErrStudentInactive
	}

	// 3. Получаем таймслот
	slot, err := uc.timeslotRepo.GetByID(ctx, req.TimeslotID)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeslotNotFound) {
			uc.logger.Warn("CreateSubscription: timeslot id=%d not found", req.TimeslotID)
			return nil, ErrTimeslotNotFound
		}
		uc.logger.Error("CreateSubscription: failed to get timeslot id=%d: %v", req.TimeslotID, err)
		return nil, fmt.Errorf("%w: failed to get timeslot: %v", ErrInternal, err)
	}

	// Неактивный таймслот не продаётся
	if !slot.IsActive {
		uc.logger.Warn("CreateSubscription: timeslot id=%d is inactive", req.TimeslotID)
		return nil, ErrTimeslotNotFound
	}

	// 4. Получаем место и проверяем гендерное ограничение
	seat, err := uc.seatRepo.GetByID(ctx, req.SeatID)
	if err != nil {
		if errors.Is(err, seatRepo.ErrSeatNotFound) {
			uc.logger.Warn("CreateSubscription: seat id=%d not found", req.SeatID)
			return nil, ErrSeatNotFound
		}
		uc.logger.Error("CreateSubscription: failed to get seat id=%d: %v", req.SeatID, err)
		return nil, fmt.Errorf("%w: failed to get seat: %v", ErrInternal, err)
	}

	// Неактивное место для подбора неотличимо от несуществующего
	if !seat.IsActive {
		uc.logger.Warn("CreateSubscription: seat id=%d is inactive", req.SeatID)
		return nil, ErrSeatNotFound
	}

	if !seat.AllowsGender(student.Gender) {
		uc.logger.Warn("CreateSubscription: seat id=%d restricted to %s, student gender=%s",
			req.SeatID, seat.GenderRestriction, student.Gender)
		return nil, ErrSeatRestricted
	}

	// Переменная для хранения результата
	var result *domain.Subscription

	// 5. Проверка конфликтов, выдача номера квитанции и вставка - в одной
	// сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		candidate := domain.Candidate{
			StudentID:  req.StudentID,
			SeatID:     req.SeatID,
			TimeslotID: req.TimeslotID,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
		}

		conflict, err := uc.detectConflicts(txCtx, candidate, slot)
		if err != nil {
			return err
		}
		if conflict != nil {
			uc.logger.Warn("CreateSubscription: %s with subscription id=%d",
				conflict.Kind, conflict.SubscriptionID)
			return &domain.ConflictError{Conflict: *conflict}
		}

		// Номер квитанции: следующий порядковый номер за сегодняшний день
		today := uc.timeProvider.Now()
		seq, err := uc.subRepo.NextReceiptSequence(txCtx, today)
		if err != nil {
			uc.logger.Error("CreateSubscription: failed to get receipt sequence: %v", err)
			return fmt.Errorf("%w: failed to get receipt sequence: %v", ErrInternal, err)
		}

		sub := &domain.Subscription{
			StudentID:     req.StudentID,
			SeatID:        req.SeatID,
			TimeslotID:    req.TimeslotID,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			AmountPaid:    req.AmountPaid,
			ReceiptNumber: domain.FormatReceiptNumber(today, seq),
			Status:        domain.StatusActive,
		}

		created, err := uc.subRepo.Create(txCtx, sub)
		if err != nil {
			uc.logger.Error("CreateSubscription: failed to create subscription: %v", err)
			return fmt.Errorf("%w: failed to create subscription: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateSubscription: successfully created subscription id=%d, receipt=%s",
		result.ID, result.ReceiptNumber)

	return &Response{
		ID:            result.ID,
		StudentID:     result.StudentID,
		SeatID:        result.SeatID,
		TimeslotID:    result.TimeslotID,
		StartDate:     result.StartDate,
		EndDate:       result.EndDate,
		AmountPaid:    result.AmountPaid,
		ReceiptNumber: result.ReceiptNumber,
		Status:        string(result.Status),
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// detectConflicts читает пересекающиеся абонементы студента и места
// (с блокировкой FOR UPDATE внутри транзакции) и прогоняет три проверки
func (uc *UseCase) detectConflicts(ctx context.Context, c domain.Candidate, slot *domain.Timeslot) (*domain.Conflict, error) {
	studentSubs, err := uc.subRepo.GetOverlapping(ctx, domain.OverlapFilter{
		StudentID: ptr.Ptr(c.StudentID),
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		ExcludeID: c.ExcludeID,
	})
	if err != nil {
		uc.logger.Error("CreateSubscription: failed to get student subscriptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get student subscriptions: %v", ErrInternal, err)
	}

	seatSubs, err := uc.subRepo.GetOverlapping(ctx, domain.OverlapFilter{
		SeatID:    ptr.Ptr(c.SeatID),
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		ExcludeID: c.ExcludeID,
	})
	if err != nil {
		uc.logger.Error("CreateSubscription: failed to get seat subscriptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get seat subscriptions: %v", ErrInternal, err)
	}

	slots, err := uc.timeslotRepo.List(ctx, false)
	if err != nil {
		uc.logger.Error("CreateSubscription: failed to list timeslots: %v", err)
		return nil, fmt.Errorf("%w: failed to list timeslots: %v", ErrInternal, err)
	}

	slotsByID := make(map[int64]*domain.Timeslot, len(slots))
	for _, s := range slots {
		slotsByID[s.ID] = s
	}

	conflict, err := domain.DetectConflicts(c, slot, studentSubs, seatSubs, slotsByID)
	if err != nil {
		uc.logger.Error("CreateSubscription: conflict detection failed: %v", err)
		return nil, fmt.Errorf("%w: conflict detection failed: %v", ErrInternal, err)
	}

	return conflict, nil
}
