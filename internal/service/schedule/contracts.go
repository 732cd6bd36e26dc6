package schedule

import (
	"context"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// ScheduleRepository интерфейс репозитория расписания донаций
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.Schedule, error)
	Update(ctx context.Context, s *domain.Schedule) error
	ListExcluded(ctx context.Context) ([]*domain.ExcludedDate, error)
	AddExcluded(ctx context.Context, excluded *domain.ExcludedDate) (*domain.ExcludedDate, error)
	RemoveExcluded(ctx context.Context, id int64) error
	IsExcluded(ctx context.Context, day types.Date) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
