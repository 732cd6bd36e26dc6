package list_suspensions

import (
	"context"

	suspensionModels "github.com/m04kA/SMC-DonorService/internal/service/suspensions/models"
)

type SuspensionService interface {
	List(ctx context.Context, req *suspensionModels.ListSuspensionsRequest) (*suspensionModels.SuspensionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
