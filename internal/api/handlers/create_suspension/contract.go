package create_suspension

import (
	"context"

	suspensionModels "github.com/m04kA/SMC-DonorService/internal/service/suspensions/models"
)

type SuspensionService interface {
	Create(ctx context.Context, adminID int64, req *suspensionModels.CreateSuspensionRequest) (*suspensionModels.SuspensionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
