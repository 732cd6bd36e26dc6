package donations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// DonationRepository интерфейс репозитория донаций
type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) (*domain.Donation, error)
	GetByID(ctx context.Context, id int64) (*domain.Donation, error)
	List(ctx context.Context, filter domain.DonationsFilter) ([]*domain.Donation, error)
	GetByDonorID(ctx context.Context, donorID int64) ([]*domain.Donation, error)
	GetLatestByDonorID(ctx context.Context, donorID int64) (*domain.Donation, error)
	CountByDonorID(ctx context.Context, donorID int64) (int, error)
	UpdateNotes(ctx context.Context, id int64, notes string) error
}

// DonorRepository интерфейс репозитория доноров
type DonorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Donor, error)
	RefreshDonationStats(ctx context.Context, id int64, lastDonation *types.Date, total int, nextDue types.Date) error
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
