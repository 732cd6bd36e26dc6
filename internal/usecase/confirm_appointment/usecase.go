package confirm_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/appointment"
	donorRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donor"
	ledgerRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/ledger"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// UseCase use case подтверждения даты донации
type UseCase struct {
	appointmentRepo AppointmentRepository
	donorRepo       DonorRepository
	scheduleRepo    ScheduleRepository
	ledgerRepo      LedgerRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	donorRepo DonorRepository,
	scheduleRepo ScheduleRepository,
	ledgerRepo LedgerRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		donorRepo:       donorRepo,
		scheduleRepo:    scheduleRepo,
		ledgerRepo:      ledgerRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute подтверждает одну из предложенных дат донации
// Использует сериализуемую транзакцию: резервирование места на дату и
// смена статуса либо проходят вместе, либо не проходят вовсе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmAppointment: appointment=%d, date=%s, requester=%d",
		req.AppointmentID, req.Date, req.RequesterID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmAppointment: validation failed: %v", err)
		return nil, err
	}

	today := types.NewDate(uc.timeProvider.Now())

	var result *domain.Appointment
	var adminModified bool
	var modifiedBy *int64
	var confirmedAt time.Time

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем запись с блокировкой (FOR UPDATE)
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Донор подтверждает только свою запись
		if !req.IsAdmin && appointment.DonorID != req.RequesterID {
			return ErrAccessDenied
		}

		// 2.3. Подтвердить можно только ожидающую запись
		if appointment.Status != domain.StatusPending {
			return ErrNotPending
		}

		// 2.4. Дата обязана входить в предложенные
		if !appointment.IsProposedDate(req.Date) {
			return ErrNotProposedDate
		}

		if req.Date.Before(today) {
			return fmt.Errorf("%w: %s is in the past", ErrDateNotBookable, req.Date)
		}

		// 2.5. Донор мог быть отстранён после предложения дат
		donor, err := uc.donorRepo.GetByID(txCtx, appointment.DonorID)
		if err != nil {
			if errors.Is(err, donorRepo.ErrDonorNotFound) {
				return fmt.Errorf("%w: donor disappeared: %v", ErrInternal, err)
			}
			return fmt.Errorf("%w: failed to get donor: %v", ErrInternal, err)
		}
		if !donor.CanBeScheduled() {
			return ErrDonorNotSchedulable
		}

		// 2.6. Расписание могло измениться после предложения дат
		schedule, err := uc.scheduleRepo.Get(txCtx)
		if err != nil {
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		setting := schedule.Setting(req.Date.Weekday())
		if !setting.Enabled {
			return fmt.Errorf("%w: %s falls on a disabled weekday", ErrDateNotBookable, req.Date)
		}

		excluded, err := uc.scheduleRepo.IsExcluded(txCtx, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to check excluded date: %v", ErrInternal, err)
		}
		if excluded {
			return fmt.Errorf("%w: %s is excluded", ErrDateNotBookable, req.Date)
		}

		// 2.7. Атомарно занимаем место на дату
		if err := uc.ledgerRepo.Reserve(txCtx, req.Date, setting.Capacity); err != nil {
			if errors.Is(err, ledgerRepo.ErrCapacityExceeded) {
				return ErrCapacityExceeded
			}
			return fmt.Errorf("%w: failed to reserve date: %v", ErrInternal, err)
		}

		// 2.8. Подтверждаем запись
		adminModified = req.IsAdmin && appointment.DonorID != req.RequesterID
		if adminModified {
			modifiedBy = &req.RequesterID
		}

		confirmedAt, err = uc.appointmentRepo.Confirm(txCtx, appointment.ID, req.Date, adminModified, modifiedBy)
		if err != nil {
			return fmt.Errorf("%w: failed to confirm appointment: %v", ErrInternal, err)
		}

		result = appointment
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound),
			errors.Is(err, ErrAccessDenied),
			errors.Is(err, ErrNotPending),
			errors.Is(err, ErrNotProposedDate),
			errors.Is(err, ErrDateNotBookable),
			errors.Is(err, ErrCapacityExceeded),
			errors.Is(err, ErrDonorNotSchedulable):
			uc.logger.Warn("ConfirmAppointment: %v", err)
		default:
			uc.logger.Error("ConfirmAppointment: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("ConfirmAppointment: appointment id=%d confirmed for %s", result.ID, req.Date)

	return &Response{
		ID:            result.ID,
		DonorID:       result.DonorID,
		ConfirmedDate: req.Date,
		Status:        string(domain.StatusConfirmed),
		AdminModified: adminModified,
		ModifiedBy:    modifiedBy,
		UpdatedAt:     confirmedAt,
	}, nil
}
