package donors

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	donorRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donor"
	"github.com/m04kA/SMC-DonorService/internal/service/donors/models"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Service сервис для работы с донорами
type Service struct {
	donorRepo       DonorRepository
	donationRepo    DonationRepository
	appointmentRepo AppointmentRepository
	suspensionRepo  SuspensionRepository
	logger          Logger
	timeProvider    TimeProvider
}

// NewService создает новый экземпляр сервиса доноров
func NewService(
	donorRepo DonorRepository,
	donationRepo DonationRepository,
	appointmentRepo AppointmentRepository,
	suspensionRepo SuspensionRepository,
	logger Logger,
	timeProvider TimeProvider,
) *Service {
	return &Service{
		donorRepo:       donorRepo,
		donationRepo:    donationRepo,
		appointmentRepo: appointmentRepo,
		suspensionRepo:  suspensionRepo,
		logger:          logger,
		timeProvider:    timeProvider,
	}
}

// Create создает донора от имени администратора
func (s *Service) Create(ctx context.Context, req *models.CreateDonorRequest) (*models.DonorResponse, error) {
	s.logger.Info("Create: creating donor email=%s", req.Email)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return nil, err
	}

	now := s.timeProvider.Now()
	sex := domain.Sex(req.Sex)
	nextDue := domain.NextDueDate(sex, nil, now)

	donor := &domain.Donor{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Sex:         sex,
		BloodType:   req.BloodType,
		BirthDate:   req.BirthDate,
		IsAdmin:     req.IsAdmin,
		IsActive:    true,
		NextDueDate: &nextDue,
	}

	created, err := s.donorRepo.Create(ctx, donor)
	if err != nil {
		if errors.Is(err, donorRepo.ErrDuplicateDonor) {
			s.logger.Warn("Create: donor email=%s already exists", req.Email)
			return nil, ErrDuplicateDonor
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: donor created id=%d", created.ID)
	return s.buildResponse(ctx, created)
}

// GetByID получает донора по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.DonorResponse, error) {
	donor, err := s.donorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, donorRepo.ErrDonorNotFound) {
			s.logger.Warn("GetByID: donor id=%d not found", id)
			return nil, ErrDonorNotFound
		}
		s.logger.Error("GetByID: repository error for donor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return s.buildResponse(ctx, donor)
}

// List получает список доноров с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListDonorsRequest) (*models.DonorListResponse, error) {
	donors, err := s.donorRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return s.buildListResponse(ctx, donors)
}

// ListExpiring получает доноров, у которых срок следующей донации истекает
// в ближайшие windowDays дней. Доноры с ожидающей или будущей подтверждённой
// записью не включаются.
func (s *Service) ListExpiring(ctx context.Context, windowDays int) (*models.DonorListResponse, error) {
	s.logger.Info("ListExpiring: fetching donors expiring within %d days", windowDays)

	today := types.NewDate(s.timeProvider.Now())
	before := today.AddDays(windowDays)

	scheduledIDs, err := s.appointmentRepo.ListScheduledDonorIDs(ctx, today)
	if err != nil {
		s.logger.Error("ListExpiring: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListExpiring - repository error: %v", ErrInternal, err)
	}

	donors, err := s.donorRepo.ListExpiring(ctx, before, scheduledIDs)
	if err != nil {
		s.logger.Error("ListExpiring: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListExpiring - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListExpiring: found %d donors", len(donors))
	return s.buildListResponse(ctx, donors)
}

// Update обновляет профиль донора от имени администратора
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateDonorRequest) (*models.DonorResponse, error) {
	s.logger.Info("Update: updating donor id=%d", id)

	donor, err := s.donorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, donorRepo.ErrDonorNotFound) {
			s.logger.Warn("Update: donor id=%d not found", id)
			return nil, ErrDonorNotFound
		}
		s.logger.Error("Update: repository error for donor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	applyUpdate(donor, req)

	if donor.Email == "" {
		s.logger.Warn("Update: email cannot be empty for donor id=%d", id)
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	if err := s.donorRepo.Update(ctx, donor); err != nil {
		if errors.Is(err, donorRepo.ErrDuplicateDonor) {
			s.logger.Warn("Update: email conflict for donor id=%d", id)
			return nil, ErrDuplicateDonor
		}
		if errors.Is(err, donorRepo.ErrDonorNotFound) {
			return nil, ErrDonorNotFound
		}
		s.logger.Error("Update: repository error for donor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: donor id=%d updated", id)
	return s.buildResponse(ctx, donor)
}

// UpdateProfile обновляет собственный профиль донора
// Административные флаги остаются неизменными
func (s *Service) UpdateProfile(ctx context.Context, donorID int64, req *models.UpdateProfileRequest) (*models.DonorResponse, error) {
	adminReq := &models.UpdateDonorRequest{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		BloodType: req.BloodType,
		BirthDate: req.BirthDate,
	}
	return s.Update(ctx, donorID, adminReq)
}

// Delete удаляет донора
// Донор с историей донаций деактивируется, чтобы сохранить историю
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting donor id=%d", id)

	if _, err := s.donorRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, donorRepo.ErrDonorNotFound) {
			s.logger.Warn("Delete: donor id=%d not found", id)
			return ErrDonorNotFound
		}
		s.logger.Error("Delete: repository error for donor id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	count, err := s.donationRepo.CountByDonorID(ctx, id)
	if err != nil {
		s.logger.Error("Delete: repository error for donor id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if count > 0 {
		s.logger.Info("Delete: donor id=%d has %d donations, deactivating instead", id, count)
		if err := s.donorRepo.Deactivate(ctx, id); err != nil {
			s.logger.Error("Delete: repository error for donor id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	}

	if err := s.donorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, donorRepo.ErrDonorNotFound) {
			return ErrDonorNotFound
		}
		s.logger.Error("Delete: repository error for donor id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: donor id=%d deleted", id)
	return nil
}

// Вспомогательные методы

// buildResponse собирает DTO донора с учётом активного отстранения:
// срок следующей донации не может наступить раньше конца отстранения
func (s *Service) buildResponse(ctx context.Context, donor *domain.Donor) (*models.DonorResponse, error) {
	effective, err := s.effectiveDueDate(ctx, donor)
	if err != nil {
		return nil, err
	}
	return models.FromDomainDonor(donor, effective), nil
}

func (s *Service) buildListResponse(ctx context.Context, donors []*domain.Donor) (*models.DonorListResponse, error) {
	resp := &models.DonorListResponse{
		Donors: make([]models.DonorResponse, 0, len(donors)),
	}

	for _, donor := range donors {
		donorResp, err := s.buildResponse(ctx, donor)
		if err != nil {
			return nil, err
		}
		resp.Donors = append(resp.Donors, *donorResp)
	}

	return resp, nil
}

func (s *Service) effectiveDueDate(ctx context.Context, donor *domain.Donor) (*types.Date, error) {
	if !donor.IsSuspended {
		return nil, nil
	}

	suspensions, err := s.suspensionRepo.GetActiveByDonor(ctx, donor.ID)
	if err != nil {
		s.logger.Error("effectiveDueDate: repository error for donor id=%d: %v", donor.ID, err)
		return nil, fmt.Errorf("%w: effectiveDueDate - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	for _, susp := range suspensions {
		if !susp.IsCurrent(now) {
			continue
		}
		if donor.NextDueDate == nil || susp.EndDate.After(*donor.NextDueDate) {
			end := susp.EndDate
			return &end, nil
		}
	}

	return nil, nil
}

func validateCreateRequest(req *models.CreateDonorRequest) error {
	if req.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if req.FirstName == "" || req.LastName == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if !domain.Sex(req.Sex).IsValid() {
		return fmt.Errorf("%w: sex must be M or F", ErrInvalidInput)
	}
	return nil
}

func applyUpdate(donor *domain.Donor, req *models.UpdateDonorRequest) {
	if req.Email != nil {
		donor.Email = *req.Email
	}
	if req.FirstName != nil {
		donor.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		donor.LastName = *req.LastName
	}
	if req.Phone != nil {
		donor.Phone = *req.Phone
	}
	if req.BloodType != nil {
		donor.BloodType = *req.BloodType
	}
	if req.BirthDate != nil {
		donor.BirthDate = req.BirthDate
	}
	if req.IsAdmin != nil {
		donor.IsAdmin = *req.IsAdmin
	}
	if req.IsActive != nil {
		donor.IsActive = *req.IsActive
	}
}
