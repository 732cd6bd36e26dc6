package confirm_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/appointment"
	ledgerRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/ledger"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	getErr      error
	confirmedAt time.Time

	confirmCalled bool
	confirmedDate types.Date
	adminModified bool
	modifiedBy    *int64
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) Confirm(ctx context.Context, id int64, date types.Date, adminModified bool, modifiedBy *int64) (time.Time, error) {
	f.confirmCalled = true
	f.confirmedDate = date
	f.adminModified = adminModified
	f.modifiedBy = modifiedBy
	return f.confirmedAt, nil
}

type fakeDonorRepo struct {
	donor *domain.Donor
}

func (f *fakeDonorRepo) GetByID(ctx context.Context, id int64) (*domain.Donor, error) {
	return f.donor, nil
}

type fakeScheduleRepo struct {
	schedule *domain.Schedule
	excluded map[string]bool
}

func (f *fakeScheduleRepo) Get(ctx context.Context) (*domain.Schedule, error) {
	return f.schedule, nil
}

func (f *fakeScheduleRepo) IsExcluded(ctx context.Context, day types.Date) (bool, error) {
	return f.excluded[day.String()], nil
}

type fakeLedgerRepo struct {
	reserveErr error
	reserved   []types.Date
}

func (f *fakeLedgerRepo) Reserve(ctx context.Context, day types.Date, capacity int) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.reserved = append(f.reserved, day)
	return nil
}

func date(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.NewDateFromString(s)
	require.NoError(t, err)
	return d
}

func openSchedule(capacity int) *domain.Schedule {
	day := domain.WeekdaySetting{Enabled: true, Capacity: capacity}
	return &domain.Schedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
		Saturday:  day,
		Sunday:    day,
	}
}

func pendingAppointment(t *testing.T, donorID int64) *domain.Appointment {
	return &domain.Appointment{
		ID:            101,
		DonorID:       donorID,
		ProposedDate1: date(t, "2024-06-03"),
		ProposedDate2: date(t, "2024-06-05"),
		ProposedDate3: date(t, "2024-06-07"),
		Status:        domain.StatusPending,
	}
}

func newTestUseCase(
	appointments *fakeAppointmentRepo,
	donors *fakeDonorRepo,
	schedules *fakeScheduleRepo,
	ledger *fakeLedgerRepo,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointments,
		donorRepo:       donors,
		scheduleRepo:    schedules,
		ledgerRepo:      ledger,
		txManager:       fakeTxManager{},
		timeProvider:    fixedTime{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)},
		logger:          nopLogger{},
	}
}

func TestExecute_DonorConfirmsOwnAppointment(t *testing.T) {
	confirmedAt := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	appointments := &fakeAppointmentRepo{
		appointment: pendingAppointment(t, 7),
		confirmedAt: confirmedAt,
	}
	appointments.appointment.UpdatedAt = confirmedAt.Add(-time.Hour)
	donors := &fakeDonorRepo{donor: &domain.Donor{ID: 7, IsActive: true}}
	schedules := &fakeScheduleRepo{schedule: openSchedule(10)}
	ledger := &fakeLedgerRepo{}

	uc := newTestUseCase(appointments, donors, schedules, ledger)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		RequesterID:   7,
		Date:          date(t, "2024-06-05"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.False(t, resp.AdminModified)
	assert.Nil(t, resp.ModifiedBy)
	// В ответе время обновления после подтверждения, а не прочитанное до него
	assert.Equal(t, confirmedAt, resp.UpdatedAt)

	require.Len(t, ledger.reserved, 1)
	assert.Equal(t, "2024-06-05", ledger.reserved[0].String())

	assert.True(t, appointments.confirmCalled)
	assert.Equal(t, "2024-06-05", appointments.confirmedDate.String())
	assert.False(t, appointments.adminModified)
}

func TestExecute_AdminConfirmsForDonor(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointment: pendingAppointment(t, 7)}
	donors := &fakeDonorRepo{donor: &domain.Donor{ID: 7, IsActive: true}}
	schedules := &fakeScheduleRepo{schedule: openSchedule(10)}
	ledger := &fakeLedgerRepo{}

	uc := newTestUseCase(appointments, donors, schedules, ledger)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		RequesterID:   42,
		IsAdmin:       true,
		Date:          date(t, "2024-06-03"),
	})

	require.NoError(t, err)
	assert.True(t, resp.AdminModified)
	require.NotNil(t, resp.ModifiedBy)
	assert.Equal(t, int64(42), *resp.ModifiedBy)
}

func TestExecute_AccessDenied(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointment: pendingAppointment(t, 7)}
	donors := &fakeDonorRepo{donor: &domain.Donor{ID: 7, IsActive: true}}
	schedules := &fakeScheduleRepo{schedule: openSchedule(10)}
	ledger := &fakeLedgerRepo{}

	uc := newTestUseCase(appointments, donors, schedules, ledger)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		RequesterID:   8,
		Date:          date(t, "2024-06-03"),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, appointments.confirmCalled)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	appointments := &fakeAppointmentRepo{getErr: appointmentRepo.ErrAppointmentNotFound}
	uc := newTestUseCase(appointments, &fakeDonorRepo{}, &fakeScheduleRepo{}, &fakeLedgerRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 999,
		RequesterID:   7,
		Date:          date(t, "2024-06-03"),
	})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_NotPending(t *testing.T) {
	appointment := pendingAppointment(t, 7)
	appointment.Status = domain.StatusConfirmed

	appointments := &fakeAppointmentRepo{appointment: appointment}
	uc := newTestUseCase(appointments, &fakeDonorRepo{}, &fakeScheduleRepo{}, &fakeLedgerRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		RequesterID:   7,
		Date:          date(t, "2024-06-03"),
	})

	assert.ErrorIs(t, err, ErrNotPending)
}

func TestExecute_NotProposedDate(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointment: pendingAppointment(t, 7)}
	uc := newTestUseCase(appointments, &fakeDonorRepo{}, &fakeScheduleRepo{}, &fakeLedgerRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		RequesterID:   7,
		Date:          date(t, "2024-06-04"),
	})

	assert.ErrorIs(t, err, ErrNotProposedDate)
	assert.False(t, appointments.confirmCalled)
}

func TestExecute_ProposedDateInPast(t *testing.T) {
	appointment := pendingAppointment(t, 7)
	appointment.ProposedDate1 = date(t, "2024-05-27")

	appointments := &fakeAppointmentRepo{appointment: appointment}
	uc := newTestUseCase(appointments, &fakeDonorRepo{}, &fakeScheduleRepo{}, &fakeLedgerRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		RequesterID:   7,
		Date:          date(t, "2024-05-27"),
	})

	assert.ErrorIs(t, err, ErrDateNotBookable)
}

func TestExecute_DonorSuspendedAfterProposal(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointment: pendingAppointment(t, 7)}
	donors := &fakeDonorRepo{donor: &domain.Donor{ID: 7, IsActive: true, IsSuspended: true}}

	uc := newTestUseCase(appointments, donors, &fakeScheduleRepo{}, &fakeLedgerRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		RequesterID:   7,
		Date:          date(t, "2024-06-03"),
	})

	assert.ErrorIs(t, err, ErrDonorNotSchedulable)
}

func TestExecute_WeekdayDisabledAfterProposal(t *testing.T) {
	schedule := openSchedule(10)
	schedule.Monday = domain.WeekdaySetting{Enabled: false}

	appointments := &fakeAppointmentRepo{appointment: pendingAppointment(t, 7)}
	donors := &fakeDonorRepo{donor: &domain.Donor{ID: 7, IsActive: true}}
	schedules := &fakeScheduleRepo{schedule: schedule}

	uc := newTestUseCase(appointments, donors, schedules, &fakeLedgerRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		RequesterID:   7,
		Date:          date(t, "2024-06-03"),
	})

	assert.ErrorIs(t, err, ErrDateNotBookable)
}

func TestExecute_DateExcludedAfterProposal(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointment: pendingAppointment(t, 7)}
	donors := &fakeDonorRepo{donor: &domain.Donor{ID: 7, IsActive: true}}
	schedules := &fakeScheduleRepo{
		schedule: openSchedule(10),
		excluded: map[string]bool{"2024-06-03": true},
	}

	uc := newTestUseCase(appointments, donors, schedules, &fakeLedgerRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		RequesterID:   7,
		Date:          date(t, "2024-06-03"),
	})

	assert.ErrorIs(t, err, ErrDateNotBookable)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointment: pendingAppointment(t, 7)}
	donors := &fakeDonorRepo{donor: &domain.Donor{ID: 7, IsActive: true}}
	schedules := &fakeScheduleRepo{schedule: openSchedule(1)}
	ledger := &fakeLedgerRepo{reserveErr: ledgerRepo.ErrCapacityExceeded}

	uc := newTestUseCase(appointments, donors, schedules, ledger)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		RequesterID:   7,
		Date:          date(t, "2024-06-03"),
	})

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.False(t, appointments.confirmCalled, "status must not change when the date is full")
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeDonorRepo{}, &fakeScheduleRepo{}, &fakeLedgerRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 0,
		RequesterID:   7,
		Date:          date(t, "2024-06-03"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		RequesterID:   7,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
