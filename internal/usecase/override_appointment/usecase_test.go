package override_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DonorService/internal/domain"
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
	confirmedAt time.Time

	confirmCalled bool
	confirmedDate types.Date
	modifiedBy    *int64
	updatedNotes  *string
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) Confirm(ctx context.Context, id int64, date types.Date, adminModified bool, modifiedBy *int64) (time.Time, error) {
	f.confirmCalled = true
	f.confirmedDate = date
	f.modifiedBy = modifiedBy
	return f.confirmedAt, nil
}

func (f *fakeAppointmentRepo) UpdateNotes(ctx context.Context, id int64, notes *string) error {
	f.updatedNotes = notes
	return nil
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
	released   []types.Date
}

func (f *fakeLedgerRepo) Reserve(ctx context.Context, day types.Date, capacity int) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.reserved = append(f.reserved, day)
	return nil
}

func (f *fakeLedgerRepo) Release(ctx context.Context, day types.Date) error {
	f.released = append(f.released, day)
	return nil
}

func date(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.NewDateFromString(s)
	require.NoError(t, err)
	return d
}

func openSchedule() *domain.Schedule {
	day := domain.WeekdaySetting{Enabled: true, Capacity: 10}
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

func newTestUseCase(
	appointments *fakeAppointmentRepo,
	schedules *fakeScheduleRepo,
	ledger *fakeLedgerRepo,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointments,
		scheduleRepo:    schedules,
		ledgerRepo:      ledger,
		txManager:       fakeTxManager{},
		timeProvider:    fixedTime{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)},
		logger:          nopLogger{},
	}
}

func TestExecute_MoveConfirmedAppointment(t *testing.T) {
	oldDate := date(t, "2024-06-05")
	confirmedAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	appointments := &fakeAppointmentRepo{
		appointment: &domain.Appointment{
			ID:            101,
			DonorID:       7,
			Status:        domain.StatusConfirmed,
			ConfirmedDate: &oldDate,
			UpdatedAt:     confirmedAt.Add(-time.Hour),
		},
		confirmedAt: confirmedAt,
	}
	schedules := &fakeScheduleRepo{schedule: openSchedule()}
	ledger := &fakeLedgerRepo{}

	uc := newTestUseCase(appointments, schedules, ledger)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		AdminID:       42,
		Date:          date(t, "2024-06-10"),
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", resp.ConfirmedDate.String())
	assert.True(t, resp.AdminModified)
	assert.Equal(t, int64(42), resp.ModifiedBy)
	assert.Equal(t, confirmedAt, resp.UpdatedAt)

	// Место на новой дате занято, на прежней освобождено
	require.Len(t, ledger.reserved, 1)
	assert.Equal(t, "2024-06-10", ledger.reserved[0].String())
	require.Len(t, ledger.released, 1)
	assert.Equal(t, "2024-06-05", ledger.released[0].String())
}

func TestExecute_MovePendingAppointment(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		appointment: &domain.Appointment{
			ID:            101,
			DonorID:       7,
			Status:        domain.StatusPending,
			ProposedDate1: date(t, "2024-06-03"),
			ProposedDate2: date(t, "2024-06-05"),
			ProposedDate3: date(t, "2024-06-07"),
		},
	}
	schedules := &fakeScheduleRepo{schedule: openSchedule()}
	ledger := &fakeLedgerRepo{}

	uc := newTestUseCase(appointments, schedules, ledger)

	// Дата вне предложенного набора допустима при административном переносе
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		AdminID:       42,
		Date:          date(t, "2024-06-14"),
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-06-14", resp.ConfirmedDate.String())

	// У ожидающей записи нет занятого места, освобождать нечего
	assert.Empty(t, ledger.released)
	require.Len(t, ledger.reserved, 1)
}

func TestExecute_TerminalState(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			appointments := &fakeAppointmentRepo{
				appointment: &domain.Appointment{ID: 101, DonorID: 7, Status: status},
			}
			uc := newTestUseCase(appointments, &fakeScheduleRepo{}, &fakeLedgerRepo{})

			_, err := uc.Execute(context.Background(), &Request{
				AppointmentID: 101,
				AdminID:       42,
				Date:          date(t, "2024-06-10"),
			})

			assert.ErrorIs(t, err, ErrTerminalState)
			assert.False(t, appointments.confirmCalled)
		})
	}
}

func TestExecute_CapacityExceededKeepsOldReservation(t *testing.T) {
	oldDate := date(t, "2024-06-05")
	appointments := &fakeAppointmentRepo{
		appointment: &domain.Appointment{
			ID:            101,
			DonorID:       7,
			Status:        domain.StatusConfirmed,
			ConfirmedDate: &oldDate,
		},
	}
	schedules := &fakeScheduleRepo{schedule: openSchedule()}
	ledger := &fakeLedgerRepo{reserveErr: ledgerRepo.ErrCapacityExceeded}

	uc := newTestUseCase(appointments, schedules, ledger)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		AdminID:       42,
		Date:          date(t, "2024-06-10"),
	})

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Empty(t, ledger.released, "old reservation must survive a failed move")
	assert.False(t, appointments.confirmCalled)
}

func TestExecute_DateChecks(t *testing.T) {
	schedule := openSchedule()
	schedule.Monday = domain.WeekdaySetting{Enabled: false}

	appointments := &fakeAppointmentRepo{
		appointment: &domain.Appointment{ID: 101, DonorID: 7, Status: domain.StatusPending},
	}
	schedules := &fakeScheduleRepo{
		schedule: schedule,
		excluded: map[string]bool{"2024-06-11": true},
	}

	uc := newTestUseCase(appointments, schedules, &fakeLedgerRepo{})

	tests := []struct {
		name string
		date string
	}{
		{name: "past date", date: "2024-05-27"},
		{name: "disabled weekday", date: "2024-06-03"},
		{name: "excluded date", date: "2024-06-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				AppointmentID: 101,
				AdminID:       42,
				Date:          date(t, tt.date),
			})
			assert.ErrorIs(t, err, ErrDateNotBookable)
		})
	}
}

func TestExecute_NotesUpdated(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		appointment: &domain.Appointment{ID: 101, DonorID: 7, Status: domain.StatusPending},
	}
	schedules := &fakeScheduleRepo{schedule: openSchedule()}

	uc := newTestUseCase(appointments, schedules, &fakeLedgerRepo{})

	notes := "перенос по просьбе донора"
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 101,
		AdminID:       42,
		Date:          date(t, "2024-06-10"),
		Notes:         &notes,
	})

	require.NoError(t, err)
	require.NotNil(t, appointments.updatedNotes)
	assert.Equal(t, notes, *appointments.updatedNotes)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, notes, *resp.Notes)
}
