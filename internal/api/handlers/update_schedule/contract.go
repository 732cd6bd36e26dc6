package update_schedule

import (
	"context"

	scheduleModels "github.com/m04kA/SMC-DonorService/internal/service/schedule/models"
)

type ScheduleService interface {
	Update(ctx context.Context, req *scheduleModels.UpdateScheduleRequest) (*scheduleModels.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
