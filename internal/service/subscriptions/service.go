package subscriptions

import (
	"context"
	"errors"
	"fmt"

	studentRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/student"
	subRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/subscription"
	"github.com/m04kA/SHM-SeatService/internal/service/subscriptions/models"
)

// Service сервис для чтения и жизненного цикла абонементов
// Создание и продление с проверкой конфликтов живут в usecase-слое
type Service struct {
	subRepo     SubscriptionRepository
	studentRepo StudentRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса абонементов
func NewService(
	subRepo SubscriptionRepository,
	studentRepo StudentRepository,
	logger Logger,
) *Service {
	return &Service{
		subRepo:     subRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// GetByID получает абонемент по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SubscriptionResponse, error) {
	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, subRepo.ErrSubscriptionNotFound) {
			s.logger.Warn("GetByID: subscription id=%d not found", id)
			return nil, ErrSubscriptionNotFound
		}
		s.logger.Error("GetByID: repository error for subscription id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSubscription(sub), nil
}

// GetByStudent получает историю абонементов студента
// activeOnly=true отсекает отменённые записи
func (s *Service) GetByStudent(ctx context.Context, studentID int64, activeOnly bool) (*models.SubscriptionListResponse, error) {
	s.logger.Info("GetByStudent: fetching subscriptions for student=%d, activeOnly=%v", studentID, activeOnly)

	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, studentRepo.ErrStudentNotFound) {
			s.logger.Warn("GetByStudent: student id=%d not found", studentID)
			return nil, ErrStudentNotFound
		}
		s.logger.Error("GetByStudent: student lookup error for id=%d: %v", studentID, err)
		return nil, fmt.Errorf("%w: GetByStudent - student lookup error: %v", ErrInternal, err)
	}

	subs, err := s.subRepo.GetByStudent(ctx, studentID, activeOnly)
	if err != nil {
		s.logger.Error("GetByStudent: repository error for student=%d: %v", studentID, err)
		return nil, fmt.Errorf("%w: GetByStudent - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByStudent: successfully fetched %d subscriptions for student=%d", len(subs), studentID)
	return models.FromDomainSubscriptionList(subs), nil
}

// Cancel мягко удаляет абонемент
// Номер квитанции остаётся зарезервированным, запись видна в истории
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling subscription id=%d", id)

	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, subRepo.ErrSubscriptionNotFound) {
			s.logger.Warn("Cancel: subscription id=%d not found", id)
			return ErrSubscriptionNotFound
		}
		s.logger.Error("Cancel: repository error for subscription id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !sub.CanBeCancelled() {
		s.logger.Warn("Cancel: subscription id=%d already cancelled", id)
		return ErrCannotCancel
	}

	if err := s.subRepo.Cancel(ctx, id); err != nil {
		if errors.Is(err, subRepo.ErrSubscriptionNotFound) {
			s.logger.Warn("Cancel: subscription id=%d not found during cancellation", id)
			return ErrSubscriptionNotFound
		}
		s.logger.Error("Cancel: repository error for subscription id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled subscription id=%d", id)
	return nil
}

// Delete физически удаляет абонемент
// Только для исправления ошибок ввода оператором
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting subscription id=%d", id)

	if err := s.subRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, subRepo.ErrSubscriptionNotFound) {
			s.logger.Warn("Delete: subscription id=%d not found", id)
			return ErrSubscriptionNotFound
		}
		s.logger.Error("Delete: repository error for subscription id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted subscription id=%d", id)
	return nil
}

// ListExpiringSoon получает текущие абонементы, истекающие в ближайшие days дней
func (s *Service) ListExpiringSoon(ctx context.Context, days int) (*models.ExpiryNoticeListResponse, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: days must not be negative", ErrInvalidInput)
	}

	notices, err := s.subRepo.GetExpiringWithin(ctx, days)
	if err != nil {
		s.logger.Error("ListExpiringSoon: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListExpiringSoon - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainExpiryNotices(notices), nil
}

// ListExpired получает абонементы, истёкшие за последние days дней
func (s *Service) ListExpired(ctx context.Context, days int) (*models.ExpiryNoticeListResponse, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: days must not be negative", ErrInvalidInput)
	}

	notices, err := s.subRepo.GetExpiredWithin(ctx, days)
	if err != nil {
		s.logger.Error("ListExpired: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListExpired - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainExpiryNotices(notices), nil
}
