package get_schedule

import (
	"context"

	scheduleModels "github.com/m04kA/SMC-DonorService/internal/service/schedule/models"
)

type ScheduleService interface {
	Get(ctx context.Context) (*scheduleModels.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
