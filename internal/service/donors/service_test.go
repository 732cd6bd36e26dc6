package donors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	donorRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donor"
	"github.com/m04kA/SMC-DonorService/internal/service/donors/models"
	"github.com/m04kA/SMC-DonorService/pkg/ptr"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

type fakeDonorRepo struct {
	donor     *domain.Donor
	expiring  []*domain.Donor
	createErr error
	updateErr error

	created         *domain.Donor
	updated         *domain.Donor
	deactivated     []int64
	deleted         []int64
	expiringExclude []int64
}

func (f *fakeDonorRepo) Create(ctx context.Context, donor *domain.Donor) (*domain.Donor, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *donor
	created.ID = 55
	f.created = &created
	return &created, nil
}

func (f *fakeDonorRepo) GetByID(ctx context.Context, id int64) (*domain.Donor, error) {
	if f.donor == nil {
		return nil, donorRepo.ErrDonorNotFound
	}
	return f.donor, nil
}

func (f *fakeDonorRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.Donor, error) {
	return nil, donorRepo.ErrDonorNotFound
}

func (f *fakeDonorRepo) List(ctx context.Context, filter domain.DonorsFilter) ([]*domain.Donor, error) {
	if f.donor == nil {
		return nil, nil
	}
	return []*domain.Donor{f.donor}, nil
}

func (f *fakeDonorRepo) ListExpiring(ctx context.Context, before types.Date, excludeIDs []int64) ([]*domain.Donor, error) {
	f.expiringExclude = excludeIDs
	return f.expiring, nil
}

func (f *fakeDonorRepo) Update(ctx context.Context, donor *domain.Donor) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = donor
	return nil
}

func (f *fakeDonorRepo) Deactivate(ctx context.Context, id int64) error {
	f.deactivated = append(f.deactivated, id)
	return nil
}

func (f *fakeDonorRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeDonationRepo struct {
	count int
}

func (f *fakeDonationRepo) CountByDonorID(ctx context.Context, donorID int64) (int, error) {
	return f.count, nil
}

type fakeAppointmentRepo struct {
	scheduledIDs []int64
}

func (f *fakeAppointmentRepo) ListScheduledDonorIDs(ctx context.Context, from types.Date) ([]int64, error) {
	return f.scheduledIDs, nil
}

type fakeSuspensionRepo struct {
	active []*domain.Suspension
}

func (f *fakeSuspensionRepo) GetActiveByDonor(ctx context.Context, donorID int64) ([]*domain.Suspension, error) {
	return f.active, nil
}

func date(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.NewDateFromString(s)
	require.NoError(t, err)
	return d
}

func newTestService(
	donors *fakeDonorRepo,
	donations *fakeDonationRepo,
	appointments *fakeAppointmentRepo,
	suspensions *fakeSuspensionRepo,
) *Service {
	return NewService(
		donors,
		donations,
		appointments,
		suspensions,
		nopLogger{},
		fixedTime{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	)
}

func TestCreate(t *testing.T) {
	t.Run("new donor is due immediately", func(t *testing.T) {
		donors := &fakeDonorRepo{}
		svc := newTestService(donors, &fakeDonationRepo{}, &fakeAppointmentRepo{}, &fakeSuspensionRepo{})

		resp, err := svc.Create(context.Background(), &models.CreateDonorRequest{
			Email:     "petrov@example.com",
			FirstName: "Пётр",
			LastName:  "Петров",
			Sex:       "M",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(55), resp.ID)
		assert.True(t, resp.IsActive)
		require.NotNil(t, resp.NextDueDate)
		assert.Equal(t, "2024-06-01", *resp.NextDueDate)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		donors := &fakeDonorRepo{createErr: donorRepo.ErrDuplicateDonor}
		svc := newTestService(donors, &fakeDonationRepo{}, &fakeAppointmentRepo{}, &fakeSuspensionRepo{})

		_, err := svc.Create(context.Background(), &models.CreateDonorRequest{
			Email:     "petrov@example.com",
			FirstName: "Пётр",
			LastName:  "Петров",
			Sex:       "M",
		})

		assert.ErrorIs(t, err, ErrDuplicateDonor)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := newTestService(&fakeDonorRepo{}, &fakeDonationRepo{}, &fakeAppointmentRepo{}, &fakeSuspensionRepo{})

		_, err := svc.Create(context.Background(), &models.CreateDonorRequest{
			Email: "petrov@example.com",
			Sex:   "M",
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetByID_SuspensionOverridesDueDate(t *testing.T) {
	nextDue := date(t, "2024-06-15")

	t.Run("suspension ending later wins", func(t *testing.T) {
		donors := &fakeDonorRepo{
			donor: &domain.Donor{
				ID:          7,
				Sex:         domain.SexMale,
				IsActive:    true,
				IsSuspended: true,
				NextDueDate: &nextDue,
			},
		}
		suspensions := &fakeSuspensionRepo{
			active: []*domain.Suspension{{
				ID:       1,
				DonorID:  7,
				EndDate:  date(t, "2024-09-01"),
				IsActive: true,
			}},
		}
		svc := newTestService(donors, &fakeDonationRepo{}, &fakeAppointmentRepo{}, suspensions)

		resp, err := svc.GetByID(context.Background(), 7)

		require.NoError(t, err)
		require.NotNil(t, resp.NextDueDate)
		assert.Equal(t, "2024-09-01", *resp.NextDueDate)
	})

	t.Run("suspension ending earlier keeps computed date", func(t *testing.T) {
		donors := &fakeDonorRepo{
			donor: &domain.Donor{
				ID:          7,
				Sex:         domain.SexMale,
				IsActive:    true,
				IsSuspended: true,
				NextDueDate: &nextDue,
			},
		}
		suspensions := &fakeSuspensionRepo{
			active: []*domain.Suspension{{
				ID:       1,
				DonorID:  7,
				EndDate:  date(t, "2024-06-10"),
				IsActive: true,
			}},
		}
		svc := newTestService(donors, &fakeDonationRepo{}, &fakeAppointmentRepo{}, suspensions)

		resp, err := svc.GetByID(context.Background(), 7)

		require.NoError(t, err)
		require.NotNil(t, resp.NextDueDate)
		assert.Equal(t, "2024-06-15", *resp.NextDueDate)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(&fakeDonorRepo{}, &fakeDonationRepo{}, &fakeAppointmentRepo{}, &fakeSuspensionRepo{})

		_, err := svc.GetByID(context.Background(), 999)

		assert.ErrorIs(t, err, ErrDonorNotFound)
	})
}

func TestListExpiring_ExcludesScheduledDonors(t *testing.T) {
	donors := &fakeDonorRepo{
		expiring: []*domain.Donor{{ID: 7, Sex: domain.SexMale, IsActive: true}},
	}
	appointments := &fakeAppointmentRepo{scheduledIDs: []int64{8, 9}}
	svc := newTestService(donors, &fakeDonationRepo{}, appointments, &fakeSuspensionRepo{})

	resp, err := svc.ListExpiring(context.Background(), 14)

	require.NoError(t, err)
	require.Len(t, resp.Donors, 1)
	assert.Equal(t, int64(7), resp.Donors[0].ID)
	// Доноры с ожидающей или будущей записью не попадают в выборку
	assert.Equal(t, []int64{8, 9}, donors.expiringExclude)
}

func TestUpdateProfile_KeepsAdminFlags(t *testing.T) {
	donors := &fakeDonorRepo{
		donor: &domain.Donor{
			ID:       7,
			Email:    "old@example.com",
			Sex:      domain.SexMale,
			IsActive: true,
			IsAdmin:  false,
		},
	}
	svc := newTestService(donors, &fakeDonationRepo{}, &fakeAppointmentRepo{}, &fakeSuspensionRepo{})

	resp, err := svc.UpdateProfile(context.Background(), 7, &models.UpdateProfileRequest{
		Email: ptr.Ptr("new@example.com"),
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Email)
	assert.False(t, resp.IsAdmin)
	require.NotNil(t, donors.updated)
	assert.False(t, donors.updated.IsAdmin)
}

func TestDelete(t *testing.T) {
	t.Run("donor with history is deactivated", func(t *testing.T) {
		donors := &fakeDonorRepo{donor: &domain.Donor{ID: 7, IsActive: true}}
		donations := &fakeDonationRepo{count: 3}
		svc := newTestService(donors, donations, &fakeAppointmentRepo{}, &fakeSuspensionRepo{})

		require.NoError(t, svc.Delete(context.Background(), 7))

		assert.Equal(t, []int64{7}, donors.deactivated)
		assert.Empty(t, donors.deleted)
	})

	t.Run("donor without history is removed", func(t *testing.T) {
		donors := &fakeDonorRepo{donor: &domain.Donor{ID: 7, IsActive: true}}
		svc := newTestService(donors, &fakeDonationRepo{}, &fakeAppointmentRepo{}, &fakeSuspensionRepo{})

		require.NoError(t, svc.Delete(context.Background(), 7))

		assert.Equal(t, []int64{7}, donors.deleted)
		assert.Empty(t, donors.deactivated)
	})
}
