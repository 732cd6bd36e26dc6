package complete_appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей на донацию
type AppointmentRepository interface {
	ListCompletable(ctx context.Context, before types.Date) ([]*domain.Appointment, error)
	SetStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// DonorRepository интерфейс репозитория доноров
type DonorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Donor, error)
	RefreshDonationStats(ctx context.Context, id int64, lastDonation *types.Date, total int, nextDue types.Date) error
}

// DonationRepository интерфейс репозитория донаций
type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) (*domain.Donation, error)
	GetLatestByDonorID(ctx context.Context, donorID int64) (*domain.Donation, error)
	CountByDonorID(ctx context.Context, donorID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
