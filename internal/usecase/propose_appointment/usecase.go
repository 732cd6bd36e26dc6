package propose_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/appointment"
	donorRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donor"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// UseCase use case предложения дат донации
type UseCase struct {
	appointmentRepo AppointmentRepository
	donorRepo       DonorRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	donorRepo DonorRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		donorRepo:       donorRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute предлагает донору три даты донации
// Запись создается в статусе pending, вместимость дат на этом шаге
// не резервируется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ProposeAppointment: donor=%d, dates=%v", req.DonorID, req.Dates)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ProposeAppointment: validation failed: %v", err)
		return nil, err
	}

	today := types.NewDate(uc.timeProvider.Now())

	// 2. Получаем донора
	donor, err := uc.donorRepo.GetByID(ctx, req.DonorID)
	if err != nil {
		if errors.Is(err, donorRepo.ErrDonorNotFound) {
			uc.logger.Warn("ProposeAppointment: donor id=%d not found", req.DonorID)
			return nil, ErrDonorNotFound
		}
		uc.logger.Error("ProposeAppointment: failed to get donor id=%d: %v", req.DonorID, err)
		return nil, fmt.Errorf("%w: failed to get donor: %v", ErrInternal, err)
	}

	// 3. Неактивному или отстранённому донору даты не предлагаются
	if !donor.CanBeScheduled() {
		uc.logger.Warn("ProposeAppointment: donor id=%d cannot be scheduled", req.DonorID)
		return nil, ErrDonorNotSchedulable
	}

	// 4. Проверяем каждую дату по расписанию
	schedule, err := uc.scheduleRepo.Get(ctx)
	if err != nil {
		uc.logger.Error("ProposeAppointment: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	for _, date := range req.Dates {
		if err := validateDateInFuture(date, today); err != nil {
			uc.logger.Warn("ProposeAppointment: date validation failed: %v", err)
			return nil, err
		}

		if !schedule.Setting(date.Weekday()).Enabled {
			uc.logger.Warn("ProposeAppointment: weekday disabled for date %s", date)
			return nil, fmt.Errorf("%w: %s falls on a disabled weekday", ErrDateNotBookable, date)
		}

		excluded, err := uc.scheduleRepo.IsExcluded(ctx, date)
		if err != nil {
			uc.logger.Error("ProposeAppointment: failed to check excluded date %s: %v", date, err)
			return nil, fmt.Errorf("%w: failed to check excluded date: %v", ErrInternal, err)
		}
		if excluded {
			uc.logger.Warn("ProposeAppointment: date %s is excluded", date)
			return nil, fmt.Errorf("%w: %s is excluded", ErrDateNotBookable, date)
		}
	}

	var result *domain.Appointment

	// 5. Создаем запись в транзакции
	// Частичный уникальный индекс страхует проверку от гонки
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		_, err := uc.appointmentRepo.GetPendingByDonor(txCtx, req.DonorID)
		if err == nil {
			return ErrPendingExists
		}
		if !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return fmt.Errorf("%w: failed to check pending appointment: %v", ErrInternal, err)
		}

		appointment := &domain.Appointment{
			DonorID:       req.DonorID,
			ProposedDate1: req.Dates[0],
			ProposedDate2: req.Dates[1],
			ProposedDate3: req.Dates[2],
			Status:        domain.StatusPending,
			Notes:         req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrPendingExists) {
				return ErrPendingExists
			}
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrPendingExists) {
			uc.logger.Warn("ProposeAppointment: donor id=%d already has a pending appointment", req.DonorID)
			return nil, ErrPendingExists
		}
		uc.logger.Error("ProposeAppointment: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ProposeAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:            result.ID,
		DonorID:       result.DonorID,
		ProposedDates: []types.Date{result.ProposedDate1, result.ProposedDate2, result.ProposedDate3},
		Status:        string(result.Status),
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}
