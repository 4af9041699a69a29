package timeslots

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	seatRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/seat"
	timeslotRepo "github.com/m04kA/SHM-SeatService/internal/infra/storage/timeslot"
	"github.com/m04kA/SHM-SeatService/internal/service/timeslots/models"
	"github.com/m04kA/SHM-SeatService/pkg/types"
)

// Ключи кеша каталога
const (
	cacheKeyListAll    = "timeslots:all"
	cacheKeyListActive = "timeslots:active"
	cacheKeyByIDPrefix = "timeslot:"

	cacheTTL             = 5 * time.Minute
	cacheCleanupInterval = 10 * time.Minute
)

// Service сервис для работы с таймслотами
// Каталог читается при каждом создании абонемента и отрисовке карты зала,
// а меняется оператором редко, поэтому чтения кешируются с коротким TTL
type Service struct {
	timeslotRepo TimeslotRepository
	seatRepo     SeatRepository
	subRepo      SubscriptionRepository
	cache        *gocache.Cache
	logger       Logger
}

// NewService создает новый экземпляр сервиса таймслотов
func NewService(
	timeslotRepo TimeslotRepository,
	seatRepo SeatRepository,
	subRepo SubscriptionRepository,
	logger Logger,
) *Service {
	return &Service{
		timeslotRepo: timeslotRepo,
		seatRepo:     seatRepo,
		subRepo:      subRepo,
		cache:        gocache.New(cacheTTL, cacheCleanupInterval),
		logger:       logger,
	}
}

// Create создает новый таймслот
func (s *Service) Create(ctx context.Context, req *models.CreateTimeslotRequest) (*models.TimeslotResponse, error) {
	s.logger.Info("Create: creating timeslot name=%q, window=%s-%s", req.Name, req.StartTime, req.EndTime)

	slot, err := s.buildTimeslot(req)
	if err != nil {
		s.logger.Warn("Create: invalid timeslot request: %v", err)
		return nil, err
	}

	created, err := s.timeslotRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrDuplicateName) {
			s.logger.Warn("Create: timeslot name=%q already exists", req.Name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidate(created.ID)
	s.logger.Info("Create: successfully created timeslot id=%d", created.ID)
	return models.FromDomainTimeslot(created), nil
}

// GetByID получает таймслот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TimeslotResponse, error) {
	slot, err := s.getDomain(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainTimeslot(slot), nil
}

// GetDomainByID получает доменную модель таймслота (для проверки конфликтов)
func (s *Service) GetDomainByID(ctx context.Context, id int64) (*domain.Timeslot, error) {
	return s.getDomain(ctx, id)
}

// List получает список таймслотов
func (s *Service) List(ctx context.Context, activeOnly bool) (*models.TimeslotListResponse, error) {
	key := cacheKeyListAll
	if activeOnly {
		key = cacheKeyListActive
	}

	if cached, found := s.cache.Get(key); found {
		return models.FromDomainTimeslotList(cached.([]*domain.Timeslot)), nil
	}

	slots, err := s.timeslotRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.cache.Set(key, slots, gocache.DefaultExpiration)
	return models.FromDomainTimeslotList(slots), nil
}

// ListDomain получает доменные модели активных таймслотов (для подбора мест)
func (s *Service) ListDomain(ctx context.Context, activeOnly bool) ([]*domain.Timeslot, error) {
	key := cacheKeyListAll
	if activeOnly {
		key = cacheKeyListActive
	}

	if cached, found := s.cache.Get(key); found {
		return cached.([]*domain.Timeslot), nil
	}

	slots, err := s.timeslotRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListDomain: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListDomain - repository error: %v", ErrInternal, err)
	}

	s.cache.Set(key, slots, gocache.DefaultExpiration)
	return slots, nil
}

// Update обновляет параметры таймслота
// Смена окна не трогает существующие абонементы: они привязаны к id слота
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTimeslotRequest) (*models.TimeslotResponse, error) {
	s.logger.Info("Update: updating timeslot id=%d", id)

	slot, err := s.getDomain(ctx, id)
	if err != nil {
		return nil, err
	}

	// Изменения применяются к копии: указатель из кеша разделяется
	// с читателями, и при отказе репозитория кеш не должен измениться
	updated := *slot
	if err := applyUpdate(&updated, req); err != nil {
		s.logger.Warn("Update: invalid request for timeslot id=%d: %v", id, err)
		return nil, err
	}

	if err := s.timeslotRepo.Update(ctx, id, &updated); err != nil {
		switch {
		case errors.Is(err, timeslotRepo.ErrTimeslotNotFound):
			s.logger.Warn("Update: timeslot id=%d not found", id)
			return nil, ErrTimeslotNotFound
		case errors.Is(err, timeslotRepo.ErrDuplicateName):
			s.logger.Warn("Update: timeslot name=%q already exists", updated.Name)
			return nil, ErrDuplicateName
		default:
			s.logger.Error("Update: repository error for timeslot id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.invalidate(id)
	s.logger.Info("Update: successfully updated timeslot id=%d", id)
	return s.GetByID(ctx, id)
}

// Deactivate мягко удаляет таймслот
// Существующие абонементы доживают до конца срока; новые не создаются
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating timeslot id=%d", id)

	if err := s.timeslotRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeslotNotFound) {
			s.logger.Warn("Deactivate: timeslot id=%d not found", id)
			return ErrTimeslotNotFound
		}
		s.logger.Error("Deactivate: repository error for timeslot id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.invalidate(id)
	s.logger.Info("Deactivate: successfully deactivated timeslot id=%d", id)
	return nil
}

// Occupancy считает заполняемость таймслота: занятые места к активным местам
func (s *Service) Occupancy(ctx context.Context, id int64) (*models.OccupancyResponse, error) {
	if _, err := s.getDomain(ctx, id); err != nil {
		return nil, err
	}

	occupied, err := s.subRepo.CountCurrentSeatsByTimeslot(ctx, id)
	if err != nil {
		s.logger.Error("Occupancy: count error for timeslot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Occupancy - count error: %v", ErrInternal, err)
	}

	seats, err := s.seatRepo.List(ctx, seatRepo.ListFilter{ActiveOnly: true})
	if err != nil {
		s.logger.Error("Occupancy: seats error for timeslot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Occupancy - seats error: %v", ErrInternal, err)
	}

	resp := &models.OccupancyResponse{
		TimeslotID:    id,
		OccupiedSeats: occupied,
		TotalSeats:    len(seats),
	}
	if resp.TotalSeats > 0 {
		resp.OccupancyRate = float64(resp.OccupiedSeats) / float64(resp.TotalSeats) * 100
	}

	return resp, nil
}

// Вспомогательные методы

func (s *Service) getDomain(ctx context.Context, id int64) (*domain.Timeslot, error) {
	key := cacheKeyByIDPrefix + strconv.FormatInt(id, 10)
	if cached, found := s.cache.Get(key); found {
		return cached.(*domain.Timeslot), nil
	}

	slot, err := s.timeslotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeslotNotFound) {
			s.logger.Warn("getDomain: timeslot id=%d not found", id)
			return nil, ErrTimeslotNotFound
		}
		s.logger.Error("getDomain: repository error for timeslot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getDomain - repository error: %v", ErrInternal, err)
	}

	s.cache.Set(key, slot, gocache.DefaultExpiration)
	return slot, nil
}

func (s *Service) invalidate(id int64) {
	s.cache.Delete(cacheKeyListAll)
	s.cache.Delete(cacheKeyListActive)
	s.cache.Delete(cacheKeyByIDPrefix + strconv.FormatInt(id, 10))
}

func (s *Service) buildTimeslot(req *models.CreateTimeslotRequest) (*domain.Timeslot, error) {
	if req.Name == "" || len(req.Name) > domain.MaxTimeslotName {
		return nil, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxTimeslotName)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if req.DurationMonths < domain.MinDurationMonths || req.DurationMonths > domain.MaxDurationMonths {
		return nil, fmt.Errorf("%w: duration must be %d..%d months",
			ErrInvalidInput, domain.MinDurationMonths, domain.MaxDurationMonths)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
	}

	slot := &domain.Timeslot{
		Name:             req.Name,
		StartTime:        start,
		EndTime:          end,
		Price:            req.Price,
		DurationMonths:   req.DurationMonths,
		LockersAvailable: req.LockersAvailable,
		IsActive:         true,
	}

	if err := slot.Window().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return slot, nil
}

func applyUpdate(slot *domain.Timeslot, req *models.UpdateTimeslotRequest) error {
	if req.Name != nil {
		if *req.Name == "" || len(*req.Name) > domain.MaxTimeslotName {
			return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxTimeslotName)
		}
		slot.Name = *req.Name
	}
	if req.StartTime != nil {
		start, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
		}
		slot.StartTime = start
	}
	if req.EndTime != nil {
		end, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
		}
		slot.EndTime = end
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
		}
		slot.Price = *req.Price
	}
	if req.DurationMonths != nil {
		if *req.DurationMonths < domain.MinDurationMonths || *req.DurationMonths > domain.MaxDurationMonths {
			return fmt.Errorf("%w: duration must be %d..%d months",
				ErrInvalidInput, domain.MinDurationMonths, domain.MaxDurationMonths)
		}
		slot.DurationMonths = *req.DurationMonths
	}
	if req.LockersAvailable != nil {
		slot.LockersAvailable = *req.LockersAvailable
	}

	if err := slot.Window().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
