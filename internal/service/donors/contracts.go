package donors

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// DonorRepository интерфейс репозитория доноров
type DonorRepository interface {
	Create(ctx context.Context, donor *domain.Donor) (*domain.Donor, error)
	GetByID(ctx context.Context, id int64) (*domain.Donor, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.Donor, error)
	List(ctx context.Context, filter domain.DonorsFilter) ([]*domain.Donor, error)
	ListExpiring(ctx context.Context, before types.Date, excludeIDs []int64) ([]*domain.Donor, error)
	Update(ctx context.Context, donor *domain.Donor) error
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// DonationRepository интерфейс репозитория донаций
type DonationRepository interface {
	CountByDonorID(ctx context.Context, donorID int64) (int, error)
}

// AppointmentRepository интерфейс репозитория записей на донацию
type AppointmentRepository interface {
	ListScheduledDonorIDs(ctx context.Context, from types.Date) ([]int64, error)
}

// SuspensionRepository интерфейс репозитория отстранений
type SuspensionRepository interface {
	GetActiveByDonor(ctx context.Context, donorID int64) ([]*domain.Suspension, error)
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
