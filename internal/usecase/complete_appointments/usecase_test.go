package complete_appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	donationRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donation"
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
	completable []*domain.Appointment
	statuses    map[int64]domain.AppointmentStatus
}

func (f *fakeAppointmentRepo) ListCompletable(ctx context.Context, before types.Date) ([]*domain.Appointment, error) {
	return f.completable, nil
}

func (f *fakeAppointmentRepo) SetStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	if f.statuses == nil {
		f.statuses = make(map[int64]domain.AppointmentStatus)
	}
	f.statuses[id] = status
	return nil
}

type fakeDonorRepo struct {
	donors    map[int64]*domain.Donor
	refreshed map[int64]types.Date
}

func (f *fakeDonorRepo) GetByID(ctx context.Context, id int64) (*domain.Donor, error) {
	return f.donors[id], nil
}

func (f *fakeDonorRepo) RefreshDonationStats(ctx context.Context, id int64, lastDonation *types.Date, total int, nextDue types.Date) error {
	if f.refreshed == nil {
		f.refreshed = make(map[int64]types.Date)
	}
	f.refreshed[id] = nextDue
	return nil
}

type fakeDonationRepo struct {
	created []*domain.Donation
}

func (f *fakeDonationRepo) Create(ctx context.Context, donation *domain.Donation) (*domain.Donation, error) {
	f.created = append(f.created, donation)
	return donation, nil
}

func (f *fakeDonationRepo) GetLatestByDonorID(ctx context.Context, donorID int64) (*domain.Donation, error) {
	var latest *domain.Donation
	for _, d := range f.created {
		if d.DonorID != donorID {
			continue
		}
		if latest == nil || d.DonationDate.After(latest.DonationDate) {
			latest = d
		}
	}
	if latest == nil {
		return nil, donationRepo.ErrDonationNotFound
	}
	return latest, nil
}

func (f *fakeDonationRepo) CountByDonorID(ctx context.Context, donorID int64) (int, error) {
	count := 0
	for _, d := range f.created {
		if d.DonorID == donorID {
			count++
		}
	}
	return count, nil
}

func date(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.NewDateFromString(s)
	require.NoError(t, err)
	return d
}

func newTestUseCase(
	appointments *fakeAppointmentRepo,
	donors *fakeDonorRepo,
	donations *fakeDonationRepo,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointments,
		donorRepo:       donors,
		donationRepo:    donations,
		txManager:       fakeTxManager{},
		timeProvider:    fixedTime{now: time.Date(2024, 6, 10, 3, 0, 0, 0, time.UTC)},
		logger:          nopLogger{},
	}
}

func TestExecute_NothingToComplete(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeDonorRepo{}, &fakeDonationRepo{})

	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Completed)
}

func TestExecute_CompletesPastConfirmedAppointments(t *testing.T) {
	d1 := date(t, "2024-06-03")
	d2 := date(t, "2024-06-07")
	notes := "первая донация"

	appointments := &fakeAppointmentRepo{
		completable: []*domain.Appointment{
			{ID: 1, DonorID: 7, Status: domain.StatusConfirmed, ConfirmedDate: &d1, Notes: &notes},
			{ID: 2, DonorID: 8, Status: domain.StatusConfirmed, ConfirmedDate: &d2},
		},
	}
	donors := &fakeDonorRepo{
		donors: map[int64]*domain.Donor{
			7: {ID: 7, Sex: domain.SexMale, IsActive: true},
			8: {ID: 8, Sex: domain.SexFemale, IsActive: true},
		},
	}
	donations := &fakeDonationRepo{}

	uc := newTestUseCase(appointments, donors, donations)

	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Completed)

	assert.Equal(t, domain.StatusCompleted, appointments.statuses[1])
	assert.Equal(t, domain.StatusCompleted, appointments.statuses[2])

	require.Len(t, donations.created, 2)
	assert.Equal(t, int64(7), donations.created[0].DonorID)
	assert.Equal(t, "2024-06-03", donations.created[0].DonationDate.String())
	assert.Equal(t, notes, donations.created[0].Notes)

	// Следующая дата донации пересчитана по полу донора
	require.Len(t, donors.refreshed, 2)
	assert.Equal(t, "2024-09-03", donors.refreshed[7].String())
	assert.Equal(t, "2024-12-07", donors.refreshed[8].String())
}
