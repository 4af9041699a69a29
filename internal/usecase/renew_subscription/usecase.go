package renew_subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	studentRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/student"
	subRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/subscription"
	timeslotRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/timeslot"
	"github.com/m04kA/SHM-SeatService/pkg/ptr"
)

// UseCase use case для продления абонемента
// Продление - это новый абонемент на то же место и таймслот:
// начало = конец исходного + 1 день, конец = начало + months календарных
// месяцев (AddDate, не 30*months дней)
type UseCase struct {
	subRepo      SubscriptionRepository
	timeslotRepo TimeslotRepository
	studentRepo  StudentRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	subRepo SubscriptionRepository,
	timeslotRepo TimeslotRepository,
	studentRepo StudentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		subRepo:      subRepo,
		timeslotRepo: timeslotRepo,
		studentRepo:  studentRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case продления абонемента
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RenewSubscription: subscription=%d", req.SubscriptionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RenewSubscription: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем исходный абонемент
	existing, err := uc.subRepo.GetByID(ctx, req.SubscriptionID)
	if err != nil {
		if errors.Is(err, subRepo.ErrSubscriptionNotFound) {
			uc.logger.Warn("RenewSubscription: subscription id=%d not found", req.SubscriptionID)
			return nil, ErrSubscriptionNotFound
		}
		uc.logger.Error("RenewSubscription: failed to get subscription id=%d: %v", req.SubscriptionID, err)
		return nil, fmt.Errorf("%w: failed to get subscription: %v", ErrInternal, err)
	}

	if !existing.IsActive() {
		uc.logger.Warn("RenewSubscription: subscription id=%d is cancelled", req.SubscriptionID)
		return nil, ErrSubscriptionCancelled
	}

	// 3. Студент должен оставаться активным
	student, err := uc.studentRepo.GetByID(ctx, existing.StudentID)
	if err != nil {
		if errors.Is(err, studentRepo.ErrStudentNotFound) {
			uc.logger.Warn("RenewSubscription: student id=%d not found", existing.StudentID)
			return nil, ErrStudentInactive
		}
		uc.logger.Error("RenewSubscription: failed to get student id=%d: %v", existing.StudentID, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	if !student.IsActive {
		uc.logger.Warn("RenewSubscription: student id=%d is inactive", existing.StudentID)
		return nil, ErrStudentInactive
	}

	// 4. Таймслот: неактивный не продлевается
	slot, err := uc.timeslotRepo.GetByID(ctx, existing.TimeslotID)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeslotNotFound) {
			uc.logger.Warn("RenewSubscription: timeslot id=%d not found", existing.TimeslotID)
			return nil, ErrTimeslotNotFound
		}
		uc.logger.Error("RenewSubscription: failed to get timeslot id=%d: %v", existing.TimeslotID, err)
		return nil, fmt.Errorf("%w: failed to get timeslot: %v", ErrInternal, err)
	}

	if !slot.IsActive {
		uc.logger.Warn("RenewSubscription: timeslot id=%d is inactive", existing.TimeslotID)
		return nil, ErrTimeslotNotFound
	}

	// 5. Параметры продления: срок по умолчанию из таймслота, сумма - его
	// ТЕКУЩАЯ цена (не прошлый платёж: цены могли измениться)
	months := slot.RenewalMonths()
	if req.Months != nil {
		months = *req.Months
	}

	amount := slot.Price
	if req.Amount != nil {
		amount = *req.Amount
	}

	// Календарная арифметика: 31 января + 1 месяц нормализуется стандартной
	// библиотекой, без дрейфа на 30-дневных приближениях
	startDate := existing.EndDate.AddDate(0, 0, 1)
	endDate := startDate.AddDate(0, months, 0)

	uc.logger.Info("RenewSubscription: renewing subscription id=%d for %d months, %s..%s",
		existing.ID, months, startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))

	// Переменная для хранения результата
	var result *domain.Subscription

	// 6. Проверка конфликтов и вставка - в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		candidate := domain.Candidate{
			ExcludeID:  ptr.Ptr(existing.ID),
			StudentID:  existing.StudentID,
			SeatID:     existing.SeatID,
			TimeslotID: existing.TimeslotID,
			StartDate:  startDate,
			EndDate:    endDate,
		}

		conflict, err := uc.detectConflicts(txCtx, candidate, slot)
		if err != nil {
			return err
		}
		if conflict != nil {
			uc.logger.Warn("RenewSubscription: %s with subscription id=%d",
				conflict.Kind, conflict.SubscriptionID)
			return &domain.ConflictError{Conflict: *conflict}
		}

		today := uc.timeProvider.Now()
		seq, err := uc.subRepo.NextReceiptSequence(txCtx, today)
		if err != nil {
			uc.logger.Error("RenewSubscription: failed to get receipt sequence: %v", err)
			return fmt.Errorf("%w: failed to get receipt sequence: %v", ErrInternal, err)
		}

		sub := &domain.Subscription{
			StudentID:     existing.StudentID,
			SeatID:        existing.SeatID,
			TimeslotID:    existing.TimeslotID,
			StartDate:     startDate,
			EndDate:       endDate,
			AmountPaid:    amount,
			ReceiptNumber: domain.FormatReceiptNumber(today, seq),
			Status:        domain.StatusActive,
		}

		created, err := uc.subRepo.Create(txCtx, sub)
		if err != nil {
			uc.logger.Error("RenewSubscription: failed to create subscription: %v", err)
			return fmt.Errorf("%w: failed to create subscription: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RenewSubscription: successfully renewed subscription id=%d into id=%d, receipt=%s",
		existing.ID, result.ID, result.ReceiptNumber)

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
		uc.logger.Error("RenewSubscription: failed to get student subscriptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get student subscriptions: %v", ErrInternal, err)
	}

	seatSubs, err := uc.subRepo.GetOverlapping(ctx, domain.OverlapFilter{
		SeatID:    ptr.Ptr(c.SeatID),
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		ExcludeID: c.ExcludeID,
	})
	if err != nil {
		uc.logger.Error("RenewSubscription: failed to get seat subscriptions: %v", err)
		return nil, fmt.Errorf("%w: failed to get seat subscriptions: %v", ErrInternal, err)
	}

	slots, err := uc.timeslotRepo.List(ctx, false)
	if err != nil {
		uc.logger.Error("RenewSubscription: failed to list timeslots: %v", err)
		return nil, fmt.Errorf("%w: failed to list timeslots: %v", ErrInternal, err)
	}

	slotsByID := make(map[int64]*domain.Timeslot, len(slots))
	for _, s := range slots {
		slotsByID[s.ID] = s
	}

	conflict, err := domain.DetectConflicts(c, slot, studentSubs, seatSubs, slotsByID)
	if err != nil {
		uc.logger.Error("RenewSubscription: conflict detection failed: %v", err)
		return nil, fmt.Errorf("%w: conflict detection failed: %v", ErrInternal, err)
	}

	return conflict, nil
}
