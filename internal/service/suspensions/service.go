package suspensions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	donorRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donor"
	suspensionRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/suspension"
	"github.com/m04kA/SMC-DonorService/internal/service/suspensions/models"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Service сервис для работы с отстранениями доноров
type Service struct {
	suspensionRepo SuspensionRepository
	donorRepo      DonorRepository
	txManager      TransactionManager
	logger         Logger
	timeProvider   TimeProvider
}

// NewService создает новый экземпляр сервиса отстранений
func NewService(
	suspensionRepo SuspensionRepository,
	donorRepo DonorRepository,
	txManager TransactionManager,
	logger Logger,
	timeProvider TimeProvider,
) *Service {
	return &Service{
		suspensionRepo: suspensionRepo,
		donorRepo:      donorRepo,
		txManager:      txManager,
		logger:         logger,
		timeProvider:   timeProvider,
	}
}

// Create отстраняет донора на заданное число месяцев
// Флаг отстранения на доноре выставляется в той же транзакции
func (s *Service) Create(ctx context.Context, adminID int64, req *models.CreateSuspensionRequest) (*models.SuspensionResponse, error) {
	s.logger.Info("Create: suspending donor=%d for %d months by admin=%d", req.DonorID, req.DurationMonths, adminID)

	if req.DurationMonths <= 0 {
		s.logger.Warn("Create: duration must be positive, got %d", req.DurationMonths)
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxReasonLength {
		s.logger.Warn("Create: reason too long for donor=%d", req.DonorID)
		return nil, fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	startDate := types.NewDate(s.timeProvider.Now())
	if req.StartDate != nil && !req.StartDate.IsZero() {
		startDate = *req.StartDate
	}

	suspension := &domain.Suspension{
		DonorID:        req.DonorID,
		StartDate:      startDate,
		DurationMonths: req.DurationMonths,
		EndDate:        startDate.AddMonths(req.DurationMonths),
		Reason:         req.Reason,
		IsActive:       true,
		CreatedBy:      adminID,
	}

	var created *domain.Suspension
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.donorRepo.GetByID(ctx, req.DonorID); err != nil {
			if errors.Is(err, donorRepo.ErrDonorNotFound) {
				return ErrDonorNotFound
			}
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		var err error
		created, err = s.suspensionRepo.Create(ctx, suspension)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		if err := s.donorRepo.SetSuspended(ctx, req.DonorID, true); err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrDonorNotFound) {
			s.logger.Warn("Create: donor id=%d not found", req.DonorID)
			return nil, ErrDonorNotFound
		}
		s.logger.Error("Create: transaction error for donor=%d: %v", req.DonorID, err)
		return nil, err
	}

	s.logger.Info("Create: suspension id=%d created for donor=%d until %s", created.ID, req.DonorID, created.EndDate)
	return models.FromDomainSuspension(created), nil
}

// GetByID получает отстранение по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SuspensionResponse, error) {
	suspension, err := s.suspensionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, suspensionRepo.ErrSuspensionNotFound) {
			s.logger.Warn("GetByID: suspension id=%d not found", id)
			return nil, ErrSuspensionNotFound
		}
		s.logger.Error("GetByID: repository error for suspension id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSuspension(suspension), nil
}

// List получает отстранения, опционально фильтруя по донору
func (s *Service) List(ctx context.Context, req *models.ListSuspensionsRequest) (*models.SuspensionListResponse, error) {
	suspensions, err := s.suspensionRepo.List(ctx, req.DonorID)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSuspensionList(suspensions), nil
}

// End досрочно завершает отстранение
// Флаг на доноре снимается, когда других активных отстранений не осталось
func (s *Service) End(ctx context.Context, id int64) error {
	s.logger.Info("End: ending suspension id=%d", id)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		suspension, err := s.suspensionRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, suspensionRepo.ErrSuspensionNotFound) {
				return ErrSuspensionNotFound
			}
			return fmt.Errorf("%w: End - repository error: %v", ErrInternal, err)
		}

		if !suspension.IsActive {
			return ErrAlreadyEnded
		}

		if err := s.suspensionRepo.End(ctx, id); err != nil {
			return fmt.Errorf("%w: End - repository error: %v", ErrInternal, err)
		}

		hasActive, err := s.suspensionRepo.HasActive(ctx, suspension.DonorID)
		if err != nil {
			return fmt.Errorf("%w: End - repository error: %v", ErrInternal, err)
		}

		if !hasActive {
			if err := s.donorRepo.SetSuspended(ctx, suspension.DonorID, false); err != nil {
				return fmt.Errorf("%w: End - repository error: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSuspensionNotFound):
			s.logger.Warn("End: suspension id=%d not found", id)
		case errors.Is(err, ErrAlreadyEnded):
			s.logger.Warn("End: suspension id=%d already ended", id)
		default:
			s.logger.Error("End: transaction error for suspension id=%d: %v", id, err)
		}
		return err
	}

	s.logger.Info("End: suspension id=%d ended", id)
	return nil
}
