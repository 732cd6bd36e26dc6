package suspensions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
)

// SuspensionRepository интерфейс репозитория отстранений
type SuspensionRepository interface {
	Create(ctx context.Context, suspension *domain.Suspension) (*domain.Suspension, error)
	GetByID(ctx context.Context, id int64) (*domain.Suspension, error)
	List(ctx context.Context, donorID *int64) ([]*domain.Suspension, error)
	End(ctx context.Context, id int64) error
	HasActive(ctx context.Context, donorID int64) (bool, error)
}

// DonorRepository интерфейс репозитория доноров
type DonorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Donor, error)
	SetSuspended(ctx context.Context, id int64, suspended bool) error
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
