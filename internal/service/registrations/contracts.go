package registrations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// RegistrationRepository интерфейс репозитория заявок на регистрацию
type RegistrationRepository interface {
	Create(ctx context.Context, request *domain.RegistrationRequest) (*domain.RegistrationRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.RegistrationRequest, error)
	List(ctx context.Context, status *domain.RegistrationRequestStatus) ([]*domain.RegistrationRequest, error)
	CountPending(ctx context.Context) (int, error)
	UpdateProcessed(ctx context.Context, request *domain.RegistrationRequest) error
	Delete(ctx context.Context, id int64) error
}

// DonorRepository интерфейс репозитория доноров
type DonorRepository interface {
	Create(ctx context.Context, donor *domain.Donor) (*domain.Donor, error)
	GetByID(ctx context.Context, id int64) (*domain.Donor, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.Donor, error)
	BindExternalID(ctx context.Context, id int64, externalID string) error
	RefreshDonationStats(ctx context.Context, id int64, lastDonation *types.Date, total int, nextDue types.Date) error
}

// DonationRepository интерфейс репозитория донаций
type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) (*domain.Donation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
