package propose_appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/appointment"
	donorRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donor"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

type fakeAppointmentRepo struct {
	pending   *domain.Appointment
	createErr error
	created   *domain.Appointment
}

func (f *fakeAppointmentRepo) GetPendingByDonor(ctx context.Context, donorID int64) (*domain.Appointment, error) {
	if f.pending == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return f.pending, nil
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *a
	created.ID = 201
	f.created = &created
	return &created, nil
}

type fakeDonorRepo struct {
	donor  *domain.Donor
	getErr error
}

func (f *fakeDonorRepo) GetByID(ctx context.Context, id int64) (*domain.Donor, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
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

func date(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.NewDateFromString(s)
	require.NoError(t, err)
	return d
}

func dates(t *testing.T, ss ...string) []types.Date {
	t.Helper()
	out := make([]types.Date, 0, len(ss))
	for _, s := range ss {
		out = append(out, date(t, s))
	}
	return out
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
	donors *fakeDonorRepo,
	schedules *fakeScheduleRepo,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointments,
		donorRepo:       donors,
		scheduleRepo:    schedules,
		txManager:       fakeTxManager{},
		timeProvider:    fixedTime{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)},
		logger:          nopLogger{},
	}
}

func activeDonor() *domain.Donor {
	return &domain.Donor{ID: 7, IsActive: true}
}

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	appointments := &fakeAppointmentRepo{}
	donors := &fakeDonorRepo{donor: activeDonor()}
	schedules := &fakeScheduleRepo{schedule: openSchedule()}

	uc := newTestUseCase(appointments, donors, schedules)

	resp, err := uc.Execute(context.Background(), &Request{
		DonorID: 7,
		Dates:   dates(t, "2024-06-03", "2024-06-05", "2024-06-07"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(201), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	require.Len(t, resp.ProposedDates, 3)

	require.NotNil(t, appointments.created)
	assert.Equal(t, domain.StatusPending, appointments.created.Status)
	assert.Nil(t, appointments.created.ConfirmedDate)
}

func TestExecute_DonorNotFound(t *testing.T) {
	donors := &fakeDonorRepo{getErr: donorRepo.ErrDonorNotFound}
	uc := newTestUseCase(&fakeAppointmentRepo{}, donors, &fakeScheduleRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		DonorID: 999,
		Dates:   dates(t, "2024-06-03", "2024-06-05", "2024-06-07"),
	})

	assert.ErrorIs(t, err, ErrDonorNotFound)
}

func TestExecute_DonorNotSchedulable(t *testing.T) {
	tests := []struct {
		name  string
		donor *domain.Donor
	}{
		{name: "inactive", donor: &domain.Donor{ID: 7, IsActive: false}},
		{name: "suspended", donor: &domain.Donor{ID: 7, IsActive: true, IsSuspended: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeDonorRepo{donor: tt.donor}, &fakeScheduleRepo{})

			_, err := uc.Execute(context.Background(), &Request{
				DonorID: 7,
				Dates:   dates(t, "2024-06-03", "2024-06-05", "2024-06-07"),
			})

			assert.ErrorIs(t, err, ErrDonorNotSchedulable)
		})
	}
}

func TestExecute_PendingAlreadyExists(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		pending: &domain.Appointment{ID: 100, DonorID: 7, Status: domain.StatusPending},
	}
	donors := &fakeDonorRepo{donor: activeDonor()}
	schedules := &fakeScheduleRepo{schedule: openSchedule()}

	uc := newTestUseCase(appointments, donors, schedules)

	_, err := uc.Execute(context.Background(), &Request{
		DonorID: 7,
		Dates:   dates(t, "2024-06-03", "2024-06-05", "2024-06-07"),
	})

	assert.ErrorIs(t, err, ErrPendingExists)
}

func TestExecute_PendingCreatedConcurrently(t *testing.T) {
	// Гонка: проверка прошла, но индекс отклонил вторую ожидающую запись
	appointments := &fakeAppointmentRepo{createErr: appointmentRepo.ErrPendingExists}
	donors := &fakeDonorRepo{donor: activeDonor()}
	schedules := &fakeScheduleRepo{schedule: openSchedule()}

	uc := newTestUseCase(appointments, donors, schedules)

	_, err := uc.Execute(context.Background(), &Request{
		DonorID: 7,
		Dates:   dates(t, "2024-06-03", "2024-06-05", "2024-06-07"),
	})

	assert.ErrorIs(t, err, ErrPendingExists)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeDonorRepo{donor: activeDonor()},
		&fakeScheduleRepo{schedule: openSchedule()},
	)

	_, err := uc.Execute(context.Background(), &Request{
		DonorID: 7,
		Dates:   dates(t, "2024-05-27", "2024-06-05", "2024-06-07"),
	})

	assert.ErrorIs(t, err, ErrDateNotBookable)
}

func TestExecute_WeekdayDisabled(t *testing.T) {
	schedule := openSchedule()
	schedule.Wednesday = domain.WeekdaySetting{Enabled: false}

	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeDonorRepo{donor: activeDonor()},
		&fakeScheduleRepo{schedule: schedule},
	)

	_, err := uc.Execute(context.Background(), &Request{
		DonorID: 7,
		Dates:   dates(t, "2024-06-03", "2024-06-05", "2024-06-07"),
	})

	assert.ErrorIs(t, err, ErrDateNotBookable)
}

func TestExecute_DateExcluded(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeDonorRepo{donor: activeDonor()},
		&fakeScheduleRepo{
			schedule: openSchedule(),
			excluded: map[string]bool{"2024-06-07": true},
		},
	)

	_, err := uc.Execute(context.Background(), &Request{
		DonorID: 7,
		Dates:   dates(t, "2024-06-03", "2024-06-05", "2024-06-07"),
	})

	assert.ErrorIs(t, err, ErrDateNotBookable)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeDonorRepo{}, &fakeScheduleRepo{})

	longNotes := strings.Repeat("x", domain.MaxNotesLength+1)

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "zero donor id",
			req:  &Request{DonorID: 0, Dates: dates(t, "2024-06-03", "2024-06-05", "2024-06-07")},
		},
		{
			name: "two dates only",
			req:  &Request{DonorID: 7, Dates: dates(t, "2024-06-03", "2024-06-05")},
		},
		{
			name: "duplicate dates",
			req:  &Request{DonorID: 7, Dates: dates(t, "2024-06-03", "2024-06-03", "2024-06-07")},
		},
		{
			name: "notes too long",
			req: &Request{
				DonorID: 7,
				Dates:   dates(t, "2024-06-03", "2024-06-05", "2024-06-07"),
				Notes:   &longNotes,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
