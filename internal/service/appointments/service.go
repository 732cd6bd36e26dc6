package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-DonorService/internal/service/appointments/models"
)

// Service сервис для работы с записями на донацию
type Service struct {
	appointmentRepo AppointmentRepository
	ledgerRepo      LedgerRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	ledgerRepo LedgerRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		ledgerRepo:      ledgerRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Донор видит только свои записи, администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64, isAdmin bool) (*models.AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && appointment.DonorID != requesterID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// List получает список записей с фильтрацией по донору и статусу
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid status filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments), nil
}

// ListByDonor получает записи донора, опционально фильтруя по статусу
func (s *Service) ListByDonor(ctx context.Context, donorID int64, status *string) (*models.AppointmentListResponse, error) {
	req := &models.ListAppointmentsRequest{
		DonorID: &donorID,
		Status:  status,
	}
	return s.List(ctx, req)
}

// Cancel отменяет запись
// Донор может отменить только свою запись, администратор - любую.
// Место в счётчике занятости освобождается в той же транзакции.
func (s *Service) Cancel(ctx context.Context, id int64, requesterID int64, isAdmin bool) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, requesterID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		appointment, err := s.appointmentRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !isAdmin && appointment.DonorID != requesterID {
			return ErrAccessDenied
		}

		if !appointment.CanBeCancelled() {
			return ErrInvalidState
		}

		if err := s.appointmentRepo.SetStatus(ctx, id, domain.StatusCancelled); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Подтверждённая запись держала место на дату
		if appointment.Status == domain.StatusConfirmed && appointment.ConfirmedDate != nil {
			if err := s.ledgerRepo.Release(ctx, *appointment.ConfirmedDate); err != nil {
				return fmt.Errorf("%w: Cancel - release reservation: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			s.logger.Warn("Cancel: appointment id=%d not found", id)
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", requesterID, id)
		case errors.Is(err, ErrInvalidState):
			s.logger.Warn("Cancel: appointment id=%d cannot be cancelled", id)
		default:
			s.logger.Error("Cancel: transaction error for appointment id=%d: %v", id, err)
		}
		return err
	}

	s.logger.Info("Cancel: appointment id=%d cancelled", id)
	return nil
}

// Delete физически удаляет запись
// Разрешено только для завершённых и отменённых записей
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting appointment id=%d", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if !appointment.IsTerminal() {
		s.logger.Warn("Delete: appointment id=%d is not terminal, status=%s", id, appointment.Status)
		return ErrInvalidState
	}

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}
