package seats

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	seatRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/seat"
	"github.com/m04kA/SHM-SeatService/internal/service/seats/models"
)

// Service сервис для работы с местами
type Service struct {
	seatRepo  SeatRepository
	subRepo   SubscriptionRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса мест
func NewService(
	seatRepo SeatRepository,
	subRepo SubscriptionRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		seatRepo:  seatRepo,
		subRepo:   subRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Create создает новое место
func (s *Service) Create(ctx context.Context, req *models.CreateSeatRequest) (*models.SeatResponse, error) {
	s.logger.Info("Create: creating seat row=%d, restriction=%s", req.RowNumber, req.GenderRestriction)

	if req.RowNumber < domain.MinRowNumber || req.RowNumber > domain.MaxRowNumber {
		s.logger.Warn("Create: invalid row number=%d", req.RowNumber)
		return nil, fmt.Errorf("%w: row number must be between %d and %d",
			ErrInvalidInput, domain.MinRowNumber, domain.MaxRowNumber)
	}

	restriction := domain.Gender(req.GenderRestriction)
	if !restriction.ValidForSeat() {
		s.logger.Warn("Create: invalid gender restriction=%s", req.GenderRestriction)
		return nil, fmt.Errorf("%w: invalid gender restriction", ErrInvalidInput)
	}

	seat := &domain.Seat{
		RowNumber:         req.RowNumber,
		GenderRestriction: restriction,
		IsActive:          true,
	}

	created, err := s.seatRepo.Create(ctx, seat)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created seat id=%d", created.ID)
	return models.FromDomainSeat(created), nil
}

// GetByID получает место по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SeatResponse, error) {
	seat, err := s.seatRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, seatRepo.ErrSeatNotFound) {
			s.logger.Warn("GetByID: seat id=%d not found", id)
			return nil, ErrSeatNotFound
		}
		s.logger.Error("GetByID: repository error for seat id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSeat(seat), nil
}

// GetEligible получает активное место и проверяет, что студент данного пола
// может его занять
// Неактивное место для подбора неотличимо от несуществующего
func (s *Service) GetEligible(ctx context.Context, id int64, gender domain.Gender) (*domain.Seat, error) {
	seat, err := s.seatRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, seatRepo.ErrSeatNotFound) {
			s.logger.Warn("GetEligible: seat id=%d not found", id)
			return nil, ErrSeatNotFound
		}
		s.logger.Error("GetEligible: repository error for seat id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetEligible - repository error: %v", ErrInternal, err)
	}

	if !seat.IsActive {
		s.logger.Warn("GetEligible: seat id=%d is inactive", id)
		return nil, ErrSeatNotFound
	}

	if !seat.AllowsGender(gender) {
		s.logger.Warn("GetEligible: seat id=%d restricted to %s, student gender=%s",
			id, seat.GenderRestriction, gender)
		return nil, fmt.Errorf("%w: seat %d is restricted to %s students",
			ErrInvalidInput, id, seat.GenderRestriction)
	}

	return seat, nil
}

// List получает список мест с фильтрацией по полу и активности
func (s *Service) List(ctx context.Context, req *models.ListSeatsRequest) (*models.SeatListResponse, error) {
	filter := seatRepo.ListFilter{ActiveOnly: req.ActiveOnly}

	if req.Gender != nil {
		gender := domain.Gender(*req.Gender)
		if !gender.ValidForStudent() {
			s.logger.Warn("List: invalid gender filter=%s", *req.Gender)
			return nil, fmt.Errorf("%w: invalid gender filter", ErrInvalidInput)
		}
		filter.Gender = &gender
	}

	seats, err := s.seatRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	occupiedIDs, err := s.subRepo.ListCurrentSeatIDs(ctx)
	if err != nil {
		s.logger.Error("List: failed to load occupied seat ids: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	occupied := make(map[int64]bool, len(occupiedIDs))
	for _, id := range occupiedIDs {
		occupied[id] = true
	}

	resp := models.FromDomainSeatList(seats)
	for i := range resp.Seats {
		resp.Seats[i].IsOccupied = occupied[resp.Seats[i].ID]
	}

	return resp, nil
}

// UpdateGenderRestriction меняет гендерное ограничение места
// Запрещено, пока на месте есть текущие абонементы: иначе студент
// обнаружил бы своё место переназначенным под другой пол
func (s *Service) UpdateGenderRestriction(ctx context.Context, id int64, req *models.UpdateRestrictionRequest) (*models.SeatResponse, error) {
	s.logger.Info("UpdateGenderRestriction: seat id=%d, restriction=%s", id, req.GenderRestriction)

	restriction := domain.Gender(req.GenderRestriction)
	if !restriction.ValidForSeat() {
		s.logger.Warn("UpdateGenderRestriction: invalid restriction=%s for seat id=%d", req.GenderRestriction, id)
		return nil, fmt.Errorf("%w: invalid gender restriction", ErrInvalidInput)
	}

	// Проверка занятости и запись выполняются в одной транзакции:
	// GetByID блокирует строку места (FOR UPDATE)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.seatRepo.GetByID(ctx, id); err != nil {
			return err
		}

		count, err := s.subRepo.CountCurrentBySeat(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSeatOccupied
		}

		return s.seatRepo.UpdateGenderRestriction(ctx, id, restriction)
	})

	if err != nil {
		switch {
		case errors.Is(err, seatRepo.ErrSeatNotFound):
			s.logger.Warn("UpdateGenderRestriction: seat id=%d not found", id)
			return nil, ErrSeatNotFound
		case errors.Is(err, ErrSeatOccupied):
			s.logger.Warn("UpdateGenderRestriction: seat id=%d has current subscriptions", id)
			return nil, ErrSeatOccupied
		default:
			s.logger.Error("UpdateGenderRestriction: transaction error for seat id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateGenderRestriction - transaction error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateGenderRestriction: successfully updated seat id=%d", id)
	return s.GetByID(ctx, id)
}

// Deactivate мягко удаляет место
// Запрещено, пока на месте есть текущие абонементы
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating seat id=%d", id)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.seatRepo.GetByID(ctx, id); err != nil {
			return err
		}

		count, err := s.subRepo.CountCurrentBySeat(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSeatOccupied
		}

		return s.seatRepo.Deactivate(ctx, id)
	})

	if err != nil {
		switch {
		case errors.Is(err, seatRepo.ErrSeatNotFound):
			s.logger.Warn("Deactivate: seat id=%d not found", id)
			return ErrSeatNotFound
		case errors.Is(err, ErrSeatOccupied):
			s.logger.Warn("Deactivate: seat id=%d has current subscriptions", id)
			return ErrSeatOccupied
		default:
			s.logger.Error("Deactivate: transaction error for seat id=%d: %v", id, err)
			return fmt.Errorf("%w: Deactivate - transaction error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Deactivate: successfully deactivated seat id=%d", id)
	return nil
}
