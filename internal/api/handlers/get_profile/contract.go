package get_profile

import (
	"context"

	donorModels "github.com/m04kA/SMC-DonorService/internal/service/donors/models"
)

type DonorService interface {
	GetByID(ctx context.Context, id int64) (*donorModels.DonorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
