package schedule

import (
	"context"
	"errors"
	"fmt"

	scheduleRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-DonorService/internal/service/schedule/models"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Service сервис для работы с расписанием донаций и исключёнными датами
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Get получает текущее расписание донаций
func (s *Service) Get(ctx context.Context) (*models.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Get: schedule row is missing")
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// Update обновляет расписание донаций
// Каждый включённый день обязан иметь вместимость не меньше единицы
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating donation schedule")

	existing, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Update: schedule row is missing")
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	schedule := req.ToDomainSchedule(existing)
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("Update: invalid schedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: donation schedule updated")
	return models.FromDomainSchedule(schedule), nil
}

// ListExcluded получает список исключённых дат
func (s *Service) ListExcluded(ctx context.Context) (*models.ExcludedDateListResponse, error) {
	dates, err := s.scheduleRepo.ListExcluded(ctx)
	if err != nil {
		s.logger.Error("ListExcluded: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListExcluded - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainExcludedDateList(dates), nil
}

// AddExcluded добавляет исключённую дату
func (s *Service) AddExcluded(ctx context.Context, req *models.AddExcludedDateRequest) (*models.ExcludedDateResponse, error) {
	s.logger.Info("AddExcluded: excluding date %s", req.Date)

	if req.Date.IsZero() {
		s.logger.Warn("AddExcluded: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	excluded, err := s.scheduleRepo.AddExcluded(ctx, req.ToDomainExcludedDate())
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateExcludedDate) {
			s.logger.Warn("AddExcluded: date %s already excluded", req.Date)
			return nil, ErrDuplicateExcludedDate
		}
		s.logger.Error("AddExcluded: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddExcluded - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddExcluded: date %s excluded, id=%d", req.Date, excluded.ID)
	return models.FromDomainExcludedDate(excluded), nil
}

// RemoveExcluded удаляет исключённую дату
func (s *Service) RemoveExcluded(ctx context.Context, id int64) error {
	s.logger.Info("RemoveExcluded: removing excluded date id=%d", id)

	if err := s.scheduleRepo.RemoveExcluded(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrExcludedDateNotFound) {
			s.logger.Warn("RemoveExcluded: excluded date id=%d not found", id)
			return ErrExcludedDateNotFound
		}
		s.logger.Error("RemoveExcluded: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: RemoveExcluded - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveExcluded: excluded date id=%d removed", id)
	return nil
}

// IsBookable проверяет, доступна ли дата для записи: день недели включён
// в расписании и дата не исключена
func (s *Service) IsBookable(ctx context.Context, day types.Date) (bool, error) {
	schedule, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return false, ErrScheduleNotFound
		}
		return false, fmt.Errorf("%w: IsBookable - repository error: %v", ErrInternal, err)
	}

	if !schedule.Setting(day.Weekday()).Enabled {
		return false, nil
	}

	excluded, err := s.scheduleRepo.IsExcluded(ctx, day)
	if err != nil {
		return false, fmt.Errorf("%w: IsBookable - repository error: %v", ErrInternal, err)
	}

	return !excluded, nil
}

// CapacityFor возвращает вместимость даты по дню недели
// Для выключенного дня и исключённой даты вместимость нулевая
func (s *Service) CapacityFor(ctx context.Context, day types.Date) (int, error) {
	schedule, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return 0, ErrScheduleNotFound
		}
		return 0, fmt.Errorf("%w: CapacityFor - repository error: %v", ErrInternal, err)
	}

	setting := schedule.Setting(day.Weekday())
	if !setting.Enabled {
		return 0, nil
	}

	excluded, err := s.scheduleRepo.IsExcluded(ctx, day)
	if err != nil {
		return 0, fmt.Errorf("%w: CapacityFor - repository error: %v", ErrInternal, err)
	}
	if excluded {
		return 0, nil
	}

	return setting.Capacity, nil
}
