package complete_appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	donationRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donation"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// UseCase use case завершения прошедших донаций
// Подтверждённые записи с датой в прошлом переводятся в completed,
// донация попадает в историю, денормализованные данные донора
// пересчитываются
type UseCase struct {
	appointmentRepo AppointmentRepository
	donorRepo       DonorRepository
	donationRepo    DonationRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	donorRepo DonorRepository,
	donationRepo DonationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		donorRepo:       donorRepo,
		donationRepo:    donationRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute обрабатывает все подтверждённые записи с датой раньше сегодняшней
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	today := types.NewDate(uc.timeProvider.Now())
	uc.logger.Info("CompleteAppointments: sweeping confirmed appointments before %s", today)

	completed := 0

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointments, err := uc.appointmentRepo.ListCompletable(txCtx, today)
		if err != nil {
			return fmt.Errorf("%w: failed to list completable appointments: %v", ErrInternal, err)
		}

		for _, appointment := range appointments {
			if err := uc.complete(txCtx, appointment); err != nil {
				return err
			}
			completed++
		}

		return nil
	})

	if err != nil {
		uc.logger.Error("CompleteAppointments: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CompleteAppointments: completed %d appointments", completed)
	return &Response{Completed: completed}, nil
}

// complete переводит одну запись в completed
func (uc *UseCase) complete(ctx context.Context, appointment *domain.Appointment) error {
	if err := uc.appointmentRepo.SetStatus(ctx, appointment.ID, domain.StatusCompleted); err != nil {
		return fmt.Errorf("%w: failed to set status for appointment %d: %v", ErrInternal, appointment.ID, err)
	}

	notes := ""
	if appointment.Notes != nil {
		notes = *appointment.Notes
	}

	if _, err := uc.donationRepo.Create(ctx, &domain.Donation{
		DonorID:      appointment.DonorID,
		DonationDate: *appointment.ConfirmedDate,
		Notes:        notes,
	}); err != nil {
		return fmt.Errorf("%w: failed to record donation for appointment %d: %v", ErrInternal, appointment.ID, err)
	}

	return uc.refreshStats(ctx, appointment.DonorID)
}

// refreshStats пересчитывает историю донора по фактическим донациям
func (uc *UseCase) refreshStats(ctx context.Context, donorID int64) error {
	donor, err := uc.donorRepo.GetByID(ctx, donorID)
	if err != nil {
		return fmt.Errorf("%w: failed to get donor %d: %v", ErrInternal, donorID, err)
	}

	latest, err := uc.donationRepo.GetLatestByDonorID(ctx, donorID)
	if err != nil && !errors.Is(err, donationRepo.ErrDonationNotFound) {
		return fmt.Errorf("%w: failed to get latest donation for donor %d: %v", ErrInternal, donorID, err)
	}

	total, err := uc.donationRepo.CountByDonorID(ctx, donorID)
	if err != nil {
		return fmt.Errorf("%w: failed to count donations for donor %d: %v", ErrInternal, donorID, err)
	}

	now := uc.timeProvider.Now()

	var lastDate *types.Date
	if latest != nil {
		d := latest.DonationDate
		lastDate = &d
	}

	nextDue := domain.NextDueDate(donor.Sex, lastDate, now)
	if err := uc.donorRepo.RefreshDonationStats(ctx, donorID, lastDate, total, nextDue); err != nil {
		return fmt.Errorf("%w: failed to refresh stats for donor %d: %v", ErrInternal, donorID, err)
	}

	return nil
}
