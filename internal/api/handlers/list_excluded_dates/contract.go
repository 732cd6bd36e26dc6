package list_excluded_dates

import (
	"context"

	scheduleModels "github.com/m04kA/SMC-DonorService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListExcluded(ctx context.Context) (*scheduleModels.ExcludedDateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
