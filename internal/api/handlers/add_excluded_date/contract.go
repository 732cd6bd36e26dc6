package add_excluded_date

import (
	"context"

	scheduleModels "github.com/m04kA/SMC-DonorService/internal/service/schedule/models"
)

type ScheduleService interface {
	AddExcluded(ctx context.Context, req *scheduleModels.AddExcludedDateRequest) (*scheduleModels.ExcludedDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
