package registrations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	donorRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donor"
	registrationRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/registration"
	"github.com/m04kA/SMC-DonorService/internal/service/registrations/models"
)

// Service сервис для работы с заявками на регистрацию
type Service struct {
	registrationRepo RegistrationRepository
	donorRepo        DonorRepository
	donationRepo     DonationRepository
	txManager        TransactionManager
	logger           Logger
	timeProvider     TimeProvider
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	registrationRepo RegistrationRepository,
	donorRepo DonorRepository,
	donationRepo DonationRepository,
	txManager TransactionManager,
	logger Logger,
	timeProvider TimeProvider,
) *Service {
	return &Service{
		registrationRepo: registrationRepo,
		donorRepo:        donorRepo,
		donationRepo:     donationRepo,
		txManager:        txManager,
		logger:           logger,
		timeProvider:     timeProvider,
	}
}

// Submit принимает заявку на регистрацию от неаутентифицированного пользователя
// Повторная заявка допустима только после отклонения предыдущей
func (s *Service) Submit(ctx context.Context, req *models.SubmitRequest) (*models.RegistrationRequestResponse, error) {
	s.logger.Info("Submit: new registration request email=%s", req.Email)

	if err := validateSubmitRequest(req); err != nil {
		s.logger.Warn("Submit: invalid request: %v", err)
		return nil, err
	}

	// Внешняя учётная запись, уже привязанная к донору, не может
	// регистрироваться повторно
	if _, err := s.donorRepo.GetByExternalID(ctx, req.ExternalID); err == nil {
		s.logger.Warn("Submit: external account already bound, email=%s", req.Email)
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, donorRepo.ErrDonorNotFound) {
		s.logger.Error("Submit: repository error: %v", err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	created, err := s.registrationRepo.Create(ctx, req.ToDomainRequest())
	if err != nil {
		if errors.Is(err, registrationRepo.ErrPendingExists) {
			s.logger.Warn("Submit: pending request already exists for email=%s", req.Email)
			return nil, ErrDuplicateRequest
		}
		s.logger.Error("Submit: repository error: %v", err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Submit: registration request id=%d created", created.ID)
	return models.FromDomainRequest(created), nil
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RegistrationRequestResponse, error) {
	request, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, registrationRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRequest(request), nil
}

// List получает заявки, опционально фильтруя по статусу
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.RegistrationRequestListResponse, error) {
	var status *domain.RegistrationRequestStatus
	if req.Status != nil {
		converted, ok := models.ToDomainRequestStatus(*req.Status)
		if !ok {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &converted
	}

	requests, err := s.registrationRepo.List(ctx, status)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRequestList(requests), nil
}

// CountPending считает ожидающие заявки
func (s *Service) CountPending(ctx context.Context) (*models.PendingCountResponse, error) {
	count, err := s.registrationRepo.CountPending(ctx)
	if err != nil {
		s.logger.Error("CountPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: CountPending - repository error: %v", ErrInternal, err)
	}

	return &models.PendingCountResponse{Pending: count}, nil
}

// Approve одобряет заявку и создает донора
// Администратор может поправить анкетные данные и зафиксировать
// первую донацию. Все изменения выполняются в одной транзакции.
func (s *Service) Approve(ctx context.Context, id int64, adminID int64, req *models.ApproveRequest) (*models.RegistrationRequestResponse, error) {
	s.logger.Info("Approve: approving request id=%d by admin=%d", id, adminID)

	var processed *domain.RegistrationRequest
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		request, err := s.registrationRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, registrationRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
		}

		if !request.IsPending() {
			return ErrAlreadyProcessed
		}

		donor := s.donorFromRequest(request, req)
		if !donor.Sex.IsValid() {
			return fmt.Errorf("%w: sex must be M or F", ErrInvalidInput)
		}

		now := s.timeProvider.Now()
		nextDue := domain.NextDueDate(donor.Sex, nil, now)
		donor.NextDueDate = &nextDue

		created, err := s.donorRepo.Create(ctx, donor)
		if err != nil {
			if errors.Is(err, donorRepo.ErrDuplicateDonor) {
				return ErrAlreadyRegistered
			}
			return fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
		}

		if req.InitialDonation != nil && !req.InitialDonation.Date.IsZero() {
			if err := s.recordInitialDonation(ctx, created, req.InitialDonation); err != nil {
				return err
			}
		}

		request.Status = domain.RequestStatusApproved
		request.AssociatedDonorID = &created.ID
		request.ProcessedBy = &adminID
		request.ProcessedAt = &now

		if err := s.registrationRepo.UpdateProcessed(ctx, request); err != nil {
			return fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
		}

		processed = request
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			s.logger.Warn("Approve: request id=%d not found", id)
		case errors.Is(err, ErrAlreadyProcessed):
			s.logger.Warn("Approve: request id=%d already processed", id)
		case errors.Is(err, ErrAlreadyRegistered):
			s.logger.Warn("Approve: donor conflict for request id=%d", id)
		default:
			s.logger.Error("Approve: transaction error for request id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Approve: request id=%d approved, donor id=%d created", id, *processed.AssociatedDonorID)
	return models.FromDomainRequest(processed), nil
}

// Associate привязывает заявку к существующему донору
// Используется, когда донор был заведён администратором до регистрации
func (s *Service) Associate(ctx context.Context, id int64, adminID int64, req *models.AssociateRequest) (*models.RegistrationRequestResponse, error) {
	s.logger.Info("Associate: associating request id=%d with donor=%d by admin=%d", id, req.DonorID, adminID)

	var processed *domain.RegistrationRequest
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		request, err := s.registrationRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, registrationRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: Associate - repository error: %v", ErrInternal, err)
		}

		if !request.IsPending() {
			return ErrAlreadyProcessed
		}

		donor, err := s.donorRepo.GetByID(ctx, req.DonorID)
		if err != nil {
			if errors.Is(err, donorRepo.ErrDonorNotFound) {
				return ErrDonorNotFound
			}
			return fmt.Errorf("%w: Associate - repository error: %v", ErrInternal, err)
		}

		if donor.ExternalID != nil {
			return ErrDonorAlreadyBound
		}

		if err := s.donorRepo.BindExternalID(ctx, donor.ID, request.ExternalID); err != nil {
			if errors.Is(err, donorRepo.ErrDuplicateDonor) {
				return ErrAlreadyRegistered
			}
			return fmt.Errorf("%w: Associate - repository error: %v", ErrInternal, err)
		}

		now := s.timeProvider.Now()
		request.Status = domain.RequestStatusApproved
		request.AssociatedDonorID = &donor.ID
		request.ProcessedBy = &adminID
		request.ProcessedAt = &now

		if err := s.registrationRepo.UpdateProcessed(ctx, request); err != nil {
			return fmt.Errorf("%w: Associate - repository error: %v", ErrInternal, err)
		}

		processed = request
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			s.logger.Warn("Associate: request id=%d not found", id)
		case errors.Is(err, ErrDonorNotFound):
			s.logger.Warn("Associate: donor id=%d not found", req.DonorID)
		case errors.Is(err, ErrAlreadyProcessed):
			s.logger.Warn("Associate: request id=%d already processed", id)
		case errors.Is(err, ErrDonorAlreadyBound), errors.Is(err, ErrAlreadyRegistered):
			s.logger.Warn("Associate: binding conflict for request id=%d, donor=%d", id, req.DonorID)
		default:
			s.logger.Error("Associate: transaction error for request id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Associate: request id=%d associated with donor=%d", id, req.DonorID)
	return models.FromDomainRequest(processed), nil
}

// Reject отклоняет заявку с необязательным пояснением
func (s *Service) Reject(ctx context.Context, id int64, adminID int64, req *models.RejectRequest) (*models.RegistrationRequestResponse, error) {
	s.logger.Info("Reject: rejecting request id=%d by admin=%d", id, adminID)

	if len(req.Note) > domain.MaxReasonLength {
		s.logger.Warn("Reject: note too long for request id=%d", id)
		return nil, fmt.Errorf("%w: note too long", ErrInvalidInput)
	}

	var processed *domain.RegistrationRequest
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		request, err := s.registrationRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, registrationRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
		}

		if !request.IsPending() {
			return ErrAlreadyProcessed
		}

		now := s.timeProvider.Now()
		request.Status = domain.RequestStatusRejected
		request.ProcessedBy = &adminID
		request.ProcessedAt = &now
		request.RejectionNote = req.Note

		if err := s.registrationRepo.UpdateProcessed(ctx, request); err != nil {
			return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
		}

		processed = request
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			s.logger.Warn("Reject: request id=%d not found", id)
		case errors.Is(err, ErrAlreadyProcessed):
			s.logger.Warn("Reject: request id=%d already processed", id)
		default:
			s.logger.Error("Reject: transaction error for request id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Reject: request id=%d rejected", id)
	return models.FromDomainRequest(processed), nil
}

// Delete физически удаляет заявку
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting request id=%d", id)

	request, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, registrationRepo.ErrRequestNotFound) {
			s.logger.Warn("Delete: request id=%d not found", id)
			return ErrRequestNotFound
		}
		s.logger.Error("Delete: failed to get request id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - get request: %v", ErrInternal, err)
	}

	// Необработанные заявки удалять нельзя, их судьбу решает администратор
	if request.IsPending() {
		s.logger.Warn("Delete: request id=%d is still pending", id)
		return ErrRequestPending
	}

	if err := s.registrationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, registrationRepo.ErrRequestNotFound) {
			s.logger.Warn("Delete: request id=%d not found", id)
			return ErrRequestNotFound
		}
		s.logger.Error("Delete: repository error for request id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: request id=%d deleted", id)
	return nil
}

// Вспомогательные методы

// donorFromRequest собирает донора из заявки с учётом правок администратора
func (s *Service) donorFromRequest(request *domain.RegistrationRequest, req *models.ApproveRequest) *domain.Donor {
	donor := &domain.Donor{
		Email:      request.Email,
		ExternalID: &request.ExternalID,
		FirstName:  request.FirstName,
		LastName:   request.LastName,
		Phone:      request.Phone,
		Sex:        request.Sex,
		BirthDate:  request.BirthDate,
		IsActive:   true,
	}

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
	if req.Sex != nil {
		donor.Sex = domain.Sex(*req.Sex)
	}
	if req.BloodType != nil {
		donor.BloodType = *req.BloodType
	}
	if req.BirthDate != nil {
		donor.BirthDate = req.BirthDate
	}

	return donor
}

// recordInitialDonation фиксирует первую донацию нового донора и
// сразу пересчитывает его историю
func (s *Service) recordInitialDonation(ctx context.Context, donor *domain.Donor, initial *models.InitialDonation) error {
	if _, err := s.donationRepo.Create(ctx, &domain.Donation{
		DonorID:      donor.ID,
		DonationDate: initial.Date,
		Notes:        initial.Notes,
	}); err != nil {
		return fmt.Errorf("%w: recordInitialDonation - repository error: %v", ErrInternal, err)
	}

	lastDate := initial.Date
	nextDue := domain.NextDueDate(donor.Sex, &lastDate, s.timeProvider.Now())
	if err := s.donorRepo.RefreshDonationStats(ctx, donor.ID, &lastDate, 1, nextDue); err != nil {
		return fmt.Errorf("%w: recordInitialDonation - repository error: %v", ErrInternal, err)
	}

	return nil
}

func validateSubmitRequest(req *models.SubmitRequest) error {
	if req.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if req.ExternalID == "" {
		return fmt.Errorf("%w: externalId is required", ErrInvalidInput)
	}
	if req.FirstName == "" || req.LastName == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if !domain.Sex(req.Sex).IsValid() {
		return fmt.Errorf("%w: sex must be M or F", ErrInvalidInput)
	}
	return nil
}
