package donations

import (
	"context"
	"errors"
	"fmt"

	donationRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donation"
	donorRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donor"
	"github.com/m04kA/SMC-DonorService/internal/service/donations/models"
	"github.com/m04kA/SMC-DonorService/internal/domain"
)

// Service сервис для работы с историей донаций
type Service struct {
	donationRepo DonationRepository
	donorRepo    DonorRepository
	txManager    TransactionManager
	logger       Logger
	timeProvider TimeProvider
}

// NewService создает новый экземпляр сервиса донаций
func NewService(
	donationRepo DonationRepository,
	donorRepo DonorRepository,
	txManager TransactionManager,
	logger Logger,
	timeProvider TimeProvider,
) *Service {
	return &Service{
		donationRepo: donationRepo,
		donorRepo:    donorRepo,
		txManager:    txManager,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Create добавляет донацию и обновляет денормализованную историю донора
// в одной транзакции
func (s *Service) Create(ctx context.Context, req *models.CreateDonationRequest) (*models.DonationResponse, error) {
	s.logger.Info("Create: recording donation for donor=%d on %s", req.DonorID, req.DonationDate)

	if req.DonationDate.IsZero() {
		s.logger.Warn("Create: donation date is required")
		return nil, fmt.Errorf("%w: donation date is required", ErrInvalidInput)
	}
	if len(req.Notes) > domain.MaxNotesLength {
		s.logger.Warn("Create: notes too long for donor=%d", req.DonorID)
		return nil, fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	var created *domain.Donation
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		donor, err := s.donorRepo.GetByID(ctx, req.DonorID)
		if err != nil {
			if errors.Is(err, donorRepo.ErrDonorNotFound) {
				return ErrDonorNotFound
			}
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		created, err = s.donationRepo.Create(ctx, req.ToDomainDonation())
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		return s.refreshStats(ctx, donor)
	})

	if err != nil {
		if errors.Is(err, ErrDonorNotFound) {
			s.logger.Warn("Create: donor id=%d not found", req.DonorID)
			return nil, ErrDonorNotFound
		}
		s.logger.Error("Create: transaction error for donor=%d: %v", req.DonorID, err)
		return nil, err
	}

	s.logger.Info("Create: donation id=%d recorded for donor=%d", created.ID, req.DonorID)
	return models.FromDomainDonation(created), nil
}

// GetByID получает донацию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.DonationResponse, error) {
	donation, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, donationRepo.ErrDonationNotFound) {
			s.logger.Warn("GetByID: donation id=%d not found", id)
			return nil, ErrDonationNotFound
		}
		s.logger.Error("GetByID: repository error for donation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDonation(donation), nil
}

// List получает донации по фильтру, новые первыми
func (s *Service) List(ctx context.Context, req *models.ListDonationsRequest) (*models.DonationListResponse, error) {
	donations, err := s.donationRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDonationList(donations), nil
}

// ListByDonor получает историю донаций донора, новые первыми
func (s *Service) ListByDonor(ctx context.Context, donorID int64) (*models.DonationListResponse, error) {
	donations, err := s.donationRepo.GetByDonorID(ctx, donorID)
	if err != nil {
		s.logger.Error("ListByDonor: repository error for donor=%d: %v", donorID, err)
		return nil, fmt.Errorf("%w: ListByDonor - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDonationList(donations), nil
}

// UpdateNotes исправляет примечания к донации
// Дата и донор неизменяемы
func (s *Service) UpdateNotes(ctx context.Context, id int64, req *models.UpdateDonationNotesRequest) error {
	s.logger.Info("UpdateNotes: updating notes for donation id=%d", id)

	if len(req.Notes) > domain.MaxNotesLength {
		s.logger.Warn("UpdateNotes: notes too long for donation id=%d", id)
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	if err := s.donationRepo.UpdateNotes(ctx, id, req.Notes); err != nil {
		if errors.Is(err, donationRepo.ErrDonationNotFound) {
			s.logger.Warn("UpdateNotes: donation id=%d not found", id)
			return ErrDonationNotFound
		}
		s.logger.Error("UpdateNotes: repository error for donation id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateNotes - repository error: %v", ErrInternal, err)
	}

	return nil
}

// refreshStats пересчитывает last_donation_date, total_donations и
// next_due_date донора по фактической истории
func (s *Service) refreshStats(ctx context.Context, donor *domain.Donor) error {
	latest, err := s.donationRepo.GetLatestByDonorID(ctx, donor.ID)
	if err != nil && !errors.Is(err, donationRepo.ErrDonationNotFound) {
		return fmt.Errorf("%w: refreshStats - repository error: %v", ErrInternal, err)
	}

	total, err := s.donationRepo.CountByDonorID(ctx, donor.ID)
	if err != nil {
		return fmt.Errorf("%w: refreshStats - repository error: %v", ErrInternal, err)
	}

	var lastDonation *domain.Donation = latest
	now := s.timeProvider.Now()

	if lastDonation == nil {
		nextDue := domain.NextDueDate(donor.Sex, nil, now)
		if err := s.donorRepo.RefreshDonationStats(ctx, donor.ID, nil, total, nextDue); err != nil {
			return fmt.Errorf("%w: refreshStats - repository error: %v", ErrInternal, err)
		}
		return nil
	}

	lastDate := lastDonation.DonationDate
	nextDue := domain.NextDueDate(donor.Sex, &lastDate, now)
	if err := s.donorRepo.RefreshDonationStats(ctx, donor.ID, &lastDate, total, nextDue); err != nil {
		return fmt.Errorf("%w: refreshStats - repository error: %v", ErrInternal, err)
	}

	return nil
}
