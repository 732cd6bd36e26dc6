package registrations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	donorRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donor"
	registrationRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/registration"
	"github.com/m04kA/SMC-DonorService/internal/service/registrations/models"
	"github.com/m04kA/SMC-DonorService/pkg/ptr"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

type fakeRegistrationRepo struct {
	request   *domain.RegistrationRequest
	createErr error

	updated *domain.RegistrationRequest
	deleted []int64
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, request *domain.RegistrationRequest) (*domain.RegistrationRequest, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *request
	created.ID = 301
	return &created, nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id int64) (*domain.RegistrationRequest, error) {
	if f.request == nil {
		return nil, registrationRepo.ErrRequestNotFound
	}
	return f.request, nil
}

func (f *fakeRegistrationRepo) List(ctx context.Context, status *domain.RegistrationRequestStatus) ([]*domain.RegistrationRequest, error) {
	if f.request == nil {
		return nil, nil
	}
	return []*domain.RegistrationRequest{f.request}, nil
}

func (f *fakeRegistrationRepo) CountPending(ctx context.Context) (int, error) {
	if f.request != nil && f.request.IsPending() {
		return 1, nil
	}
	return 0, nil
}

func (f *fakeRegistrationRepo) UpdateProcessed(ctx context.Context, request *domain.RegistrationRequest) error {
	f.updated = request
	return nil
}

func (f *fakeRegistrationRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeDonorRepo struct {
	donor     *domain.Donor
	byExtErr  error
	createErr error

	created *domain.Donor
	bound   map[int64]string
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
	if f.byExtErr != nil {
		return nil, f.byExtErr
	}
	return f.donor, nil
}

func (f *fakeDonorRepo) BindExternalID(ctx context.Context, id int64, externalID string) error {
	if f.bound == nil {
		f.bound = make(map[int64]string)
	}
	f.bound[id] = externalID
	return nil
}

func (f *fakeDonorRepo) RefreshDonationStats(ctx context.Context, id int64, lastDonation *types.Date, total int, nextDue types.Date) error {
	return nil
}

type fakeDonationRepo struct {
	created []*domain.Donation
}

func (f *fakeDonationRepo) Create(ctx context.Context, donation *domain.Donation) (*domain.Donation, error) {
	f.created = append(f.created, donation)
	return donation, nil
}

func newTestService(
	registrations *fakeRegistrationRepo,
	donors *fakeDonorRepo,
	donations *fakeDonationRepo,
) *Service {
	return NewService(
		registrations,
		donors,
		donations,
		fakeTxManager{},
		nopLogger{},
		fixedTime{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	)
}

func pendingRequest() *domain.RegistrationRequest {
	return &domain.RegistrationRequest{
		ID:         301,
		Email:      "ivanov@example.com",
		ExternalID: "ext-abc",
		FirstName:  "Иван",
		LastName:   "Иванов",
		Sex:        domain.SexMale,
		Status:     domain.RequestStatusPending,
	}
}

func TestSubmit(t *testing.T) {
	validRequest := func() *models.SubmitRequest {
		return &models.SubmitRequest{
			Email:      "ivanov@example.com",
			ExternalID: "ext-abc",
			FirstName:  "Иван",
			LastName:   "Иванов",
			Sex:        "M",
		}
	}

	t.Run("creates pending request", func(t *testing.T) {
		donors := &fakeDonorRepo{byExtErr: donorRepo.ErrDonorNotFound}
		svc := newTestService(&fakeRegistrationRepo{}, donors, &fakeDonationRepo{})

		resp, err := svc.Submit(context.Background(), validRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(301), resp.ID)
		assert.Equal(t, string(domain.RequestStatusPending), resp.Status)
	})

	t.Run("rejects already bound external account", func(t *testing.T) {
		donors := &fakeDonorRepo{donor: &domain.Donor{ID: 5}}
		svc := newTestService(&fakeRegistrationRepo{}, donors, &fakeDonationRepo{})

		_, err := svc.Submit(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("rejects duplicate pending request", func(t *testing.T) {
		registrations := &fakeRegistrationRepo{createErr: registrationRepo.ErrPendingExists}
		donors := &fakeDonorRepo{byExtErr: donorRepo.ErrDonorNotFound}
		svc := newTestService(registrations, donors, &fakeDonationRepo{})

		_, err := svc.Submit(context.Background(), validRequest())

		assert.ErrorIs(t, err, ErrDuplicateRequest)
	})

	t.Run("rejects invalid sex", func(t *testing.T) {
		svc := newTestService(&fakeRegistrationRepo{}, &fakeDonorRepo{}, &fakeDonationRepo{})

		req := validRequest()
		req.Sex = "X"
		_, err := svc.Submit(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestApprove(t *testing.T) {
	t.Run("creates donor and marks request approved", func(t *testing.T) {
		registrations := &fakeRegistrationRepo{request: pendingRequest()}
		donors := &fakeDonorRepo{}
		svc := newTestService(registrations, donors, &fakeDonationRepo{})

		resp, err := svc.Approve(context.Background(), 301, 42, &models.ApproveRequest{
			BloodType: ptr.Ptr("O+"),
		})

		require.NoError(t, err)
		assert.Equal(t, string(domain.RequestStatusApproved), resp.Status)
		require.NotNil(t, resp.AssociatedDonorID)
		assert.Equal(t, int64(55), *resp.AssociatedDonorID)

		require.NotNil(t, donors.created)
		assert.Equal(t, "O+", donors.created.BloodType)
		assert.True(t, donors.created.IsActive)
		require.NotNil(t, donors.created.ExternalID)
		assert.Equal(t, "ext-abc", *donors.created.ExternalID)
		// Новый донор без истории может сдавать сразу
		require.NotNil(t, donors.created.NextDueDate)
		assert.Equal(t, "2024-06-01", donors.created.NextDueDate.String())

		require.NotNil(t, registrations.updated)
		assert.Equal(t, int64(42), *registrations.updated.ProcessedBy)
	})

	t.Run("records initial donation", func(t *testing.T) {
		registrations := &fakeRegistrationRepo{request: pendingRequest()}
		donors := &fakeDonorRepo{}
		donations := &fakeDonationRepo{}
		svc := newTestService(registrations, donors, donations)

		donationDate, err := types.NewDateFromString("2024-05-20")
		require.NoError(t, err)

		_, err = svc.Approve(context.Background(), 301, 42, &models.ApproveRequest{
			InitialDonation: &models.InitialDonation{Date: donationDate},
		})

		require.NoError(t, err)
		require.Len(t, donations.created, 1)
		assert.Equal(t, "2024-05-20", donations.created[0].DonationDate.String())
	})

	t.Run("rejects already processed request", func(t *testing.T) {
		request := pendingRequest()
		request.Status = domain.RequestStatusRejected

		svc := newTestService(&fakeRegistrationRepo{request: request}, &fakeDonorRepo{}, &fakeDonationRepo{})

		_, err := svc.Approve(context.Background(), 301, 42, &models.ApproveRequest{})

		assert.ErrorIs(t, err, ErrAlreadyProcessed)
	})

	t.Run("maps duplicate donor to conflict", func(t *testing.T) {
		registrations := &fakeRegistrationRepo{request: pendingRequest()}
		donors := &fakeDonorRepo{createErr: donorRepo.ErrDuplicateDonor}
		svc := newTestService(registrations, donors, &fakeDonationRepo{})

		_, err := svc.Approve(context.Background(), 301, 42, &models.ApproveRequest{})

		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(&fakeRegistrationRepo{}, &fakeDonorRepo{}, &fakeDonationRepo{})

		_, err := svc.Approve(context.Background(), 999, 42, &models.ApproveRequest{})

		assert.ErrorIs(t, err, ErrRequestNotFound)
	})
}

func TestAssociate(t *testing.T) {
	t.Run("binds external identity to existing donor", func(t *testing.T) {
		registrations := &fakeRegistrationRepo{request: pendingRequest()}
		donors := &fakeDonorRepo{donor: &domain.Donor{ID: 9}}
		svc := newTestService(registrations, donors, &fakeDonationRepo{})

		resp, err := svc.Associate(context.Background(), 301, 42, &models.AssociateRequest{DonorID: 9})

		require.NoError(t, err)
		assert.Equal(t, string(domain.RequestStatusApproved), resp.Status)
		assert.Equal(t, "ext-abc", donors.bound[9])
	})

	t.Run("rejects donor with bound identity", func(t *testing.T) {
		registrations := &fakeRegistrationRepo{request: pendingRequest()}
		donors := &fakeDonorRepo{donor: &domain.Donor{ID: 9, ExternalID: ptr.Ptr("ext-other")}}
		svc := newTestService(registrations, donors, &fakeDonationRepo{})

		_, err := svc.Associate(context.Background(), 301, 42, &models.AssociateRequest{DonorID: 9})

		assert.ErrorIs(t, err, ErrDonorAlreadyBound)
	})

	t.Run("donor not found", func(t *testing.T) {
		registrations := &fakeRegistrationRepo{request: pendingRequest()}
		svc := newTestService(registrations, &fakeDonorRepo{}, &fakeDonationRepo{})

		_, err := svc.Associate(context.Background(), 301, 42, &models.AssociateRequest{DonorID: 9})

		assert.ErrorIs(t, err, ErrDonorNotFound)
	})
}

func TestReject(t *testing.T) {
	registrations := &fakeRegistrationRepo{request: pendingRequest()}
	svc := newTestService(registrations, &fakeDonorRepo{}, &fakeDonationRepo{})

	resp, err := svc.Reject(context.Background(), 301, 42, &models.RejectRequest{Note: "анкета не заполнена"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestStatusRejected), resp.Status)
	assert.Equal(t, "анкета не заполнена", resp.RejectionNote)
}

func TestDelete(t *testing.T) {
	t.Run("deletes processed request", func(t *testing.T) {
		request := pendingRequest()
		request.Status = domain.RequestStatusRejected

		registrations := &fakeRegistrationRepo{request: request}
		svc := newTestService(registrations, &fakeDonorRepo{}, &fakeDonationRepo{})

		require.NoError(t, svc.Delete(context.Background(), 301))
		assert.Equal(t, []int64{301}, registrations.deleted)
	})

	t.Run("refuses to delete pending request", func(t *testing.T) {
		registrations := &fakeRegistrationRepo{request: pendingRequest()}
		svc := newTestService(registrations, &fakeDonorRepo{}, &fakeDonationRepo{})

		err := svc.Delete(context.Background(), 301)

		assert.ErrorIs(t, err, ErrRequestPending)
		assert.Empty(t, registrations.deleted)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(&fakeRegistrationRepo{}, &fakeDonorRepo{}, &fakeDonationRepo{})

		assert.ErrorIs(t, svc.Delete(context.Background(), 999), ErrRequestNotFound)
	})
}
