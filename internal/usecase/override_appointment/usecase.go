package override_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/appointment"
	ledgerRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/ledger"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// UseCase use case административного переноса записи на донацию
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	ledgerRepo      LedgerRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	ledgerRepo LedgerRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		ledgerRepo:      ledgerRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переносит запись на произвольную дату от имени администратора
// Дата не обязана входить в предложенные, но проходит те же проверки
// расписания и вместимости, что и при обычном подтверждении
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("OverrideAppointment: appointment=%d, date=%s, admin=%d",
		req.AppointmentID, req.Date, req.AdminID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("OverrideAppointment: validation failed: %v", err)
		return nil, err
	}

	today := types.NewDate(uc.timeProvider.Now())

	var result *domain.Appointment
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

		// 2.2. Завершённую или отменённую запись перенести нельзя
		if !appointment.CanBeOverridden() {
			return ErrTerminalState
		}

		if req.Date.Before(today) {
			return fmt.Errorf("%w: %s is in the past", ErrDateNotBookable, req.Date)
		}

		// 2.3. Новая дата проходит проверки расписания
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

		// 2.4. Атомарно занимаем место на новую дату
		if err := uc.ledgerRepo.Reserve(txCtx, req.Date, setting.Capacity); err != nil {
			if errors.Is(err, ledgerRepo.ErrCapacityExceeded) {
				return ErrCapacityExceeded
			}
			return fmt.Errorf("%w: failed to reserve date: %v", ErrInternal, err)
		}

		// 2.5. Освобождаем место на прежней дате
		if appointment.Status == domain.StatusConfirmed && appointment.ConfirmedDate != nil {
			if err := uc.ledgerRepo.Release(txCtx, *appointment.ConfirmedDate); err != nil {
				return fmt.Errorf("%w: failed to release previous date: %v", ErrInternal, err)
			}
		}

		// 2.6. Подтверждаем запись на новую дату
		confirmedAt, err = uc.appointmentRepo.Confirm(txCtx, appointment.ID, req.Date, true, &req.AdminID)
		if err != nil {
			return fmt.Errorf("%w: failed to confirm appointment: %v", ErrInternal, err)
		}

		if req.Notes != nil {
			if err := uc.appointmentRepo.UpdateNotes(txCtx, appointment.ID, req.Notes); err != nil {
				return fmt.Errorf("%w: failed to update notes: %v", ErrInternal, err)
			}
			appointment.Notes = req.Notes
		}

		result = appointment
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound),
			errors.Is(err, ErrTerminalState),
			errors.Is(err, ErrDateNotBookable),
			errors.Is(err, ErrCapacityExceeded):
			uc.logger.Warn("OverrideAppointment: %v", err)
		default:
			uc.logger.Error("OverrideAppointment: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("OverrideAppointment: appointment id=%d moved to %s by admin=%d",
		result.ID, req.Date, req.AdminID)

	return &Response{
		ID:            result.ID,
		DonorID:       result.DonorID,
		ConfirmedDate: req.Date,
		Status:        string(domain.StatusConfirmed),
		AdminModified: true,
		ModifiedBy:    req.AdminID,
		Notes:         result.Notes,
		UpdatedAt:     confirmedAt,
	}, nil
}
