package appointments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/appointment"
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

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	listed      []*domain.Appointment

	statuses map[int64]domain.AppointmentStatus
	deleted  []int64
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.appointment == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.listed, nil
}

func (f *fakeAppointmentRepo) SetStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	if f.statuses == nil {
		f.statuses = make(map[int64]domain.AppointmentStatus)
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeLedgerRepo struct {
	released []types.Date
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

func newTestService(appointments *fakeAppointmentRepo, ledger *fakeLedgerRepo) *Service {
	return NewService(appointments, ledger, fakeTxManager{}, nopLogger{})
}

func TestGetByID_Visibility(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		appointment: &domain.Appointment{ID: 101, DonorID: 7, Status: domain.StatusPending},
	}
	svc := newTestService(appointments, &fakeLedgerRepo{})

	t.Run("owner sees own appointment", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 101, 7, false)
		require.NoError(t, err)
		assert.Equal(t, int64(101), resp.ID)
	})

	t.Run("admin sees any appointment", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 101, 42, true)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 101, 8, false)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		empty := newTestService(&fakeAppointmentRepo{}, &fakeLedgerRepo{})
		_, err := empty.GetByID(context.Background(), 999, 7, false)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestCancel_ConfirmedReleasesReservation(t *testing.T) {
	confirmed := date(t, "2024-06-05")
	appointments := &fakeAppointmentRepo{
		appointment: &domain.Appointment{
			ID:            101,
			DonorID:       7,
			Status:        domain.StatusConfirmed,
			ConfirmedDate: &confirmed,
		},
	}
	ledger := &fakeLedgerRepo{}
	svc := newTestService(appointments, ledger)

	require.NoError(t, svc.Cancel(context.Background(), 101, 7, false))

	assert.Equal(t, domain.StatusCancelled, appointments.statuses[101])
	require.Len(t, ledger.released, 1)
	assert.Equal(t, "2024-06-05", ledger.released[0].String())
}

func TestCancel_PendingReleasesNothing(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		appointment: &domain.Appointment{ID: 101, DonorID: 7, Status: domain.StatusPending},
	}
	ledger := &fakeLedgerRepo{}
	svc := newTestService(appointments, ledger)

	require.NoError(t, svc.Cancel(context.Background(), 101, 7, false))

	assert.Equal(t, domain.StatusCancelled, appointments.statuses[101])
	assert.Empty(t, ledger.released)
}

func TestCancel_Guards(t *testing.T) {
	t.Run("stranger is denied", func(t *testing.T) {
		appointments := &fakeAppointmentRepo{
			appointment: &domain.Appointment{ID: 101, DonorID: 7, Status: domain.StatusPending},
		}
		svc := newTestService(appointments, &fakeLedgerRepo{})

		err := svc.Cancel(context.Background(), 101, 8, false)

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, appointments.statuses)
	})

	t.Run("terminal appointment cannot be cancelled", func(t *testing.T) {
		appointments := &fakeAppointmentRepo{
			appointment: &domain.Appointment{ID: 101, DonorID: 7, Status: domain.StatusCompleted},
		}
		svc := newTestService(appointments, &fakeLedgerRepo{})

		err := svc.Cancel(context.Background(), 101, 7, false)

		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("admin cancels someone else's appointment", func(t *testing.T) {
		appointments := &fakeAppointmentRepo{
			appointment: &domain.Appointment{ID: 101, DonorID: 7, Status: domain.StatusPending},
		}
		svc := newTestService(appointments, &fakeLedgerRepo{})

		assert.NoError(t, svc.Cancel(context.Background(), 101, 42, true))
	})
}

func TestDelete_TerminalOnly(t *testing.T) {
	t.Run("deletes cancelled appointment", func(t *testing.T) {
		appointments := &fakeAppointmentRepo{
			appointment: &domain.Appointment{ID: 101, DonorID: 7, Status: domain.StatusCancelled},
		}
		svc := newTestService(appointments, &fakeLedgerRepo{})

		require.NoError(t, svc.Delete(context.Background(), 101))
		assert.Equal(t, []int64{101}, appointments.deleted)
	})

	t.Run("refuses active appointment", func(t *testing.T) {
		appointments := &fakeAppointmentRepo{
			appointment: &domain.Appointment{ID: 101, DonorID: 7, Status: domain.StatusConfirmed},
		}
		svc := newTestService(appointments, &fakeLedgerRepo{})

		err := svc.Delete(context.Background(), 101)

		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Empty(t, appointments.deleted)
	})
}
