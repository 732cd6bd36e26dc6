package confirm_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей на донацию
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Confirm(ctx context.Context, id int64, date types.Date, adminModified bool, modifiedBy *int64) (time.Time, error)
}

// DonorRepository интерфейс репозитория доноров
type DonorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Donor, error)
}

// ScheduleRepository интерфейс репозитория расписания донаций
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.Schedule, error)
	IsExcluded(ctx context.Context, day types.Date) (bool, error)
}

// LedgerRepository интерфейс счётчика занятости дат
type LedgerRepository interface {
	Reserve(ctx context.Context, day types.Date, capacity int) error
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
