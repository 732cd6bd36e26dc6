package update_profile

import (
	"context"

	donorModels "github.com/m04kA/SMC-DonorService/internal/service/donors/models"
)

type DonorService interface {
	UpdateProfile(ctx context.Context, donorID int64, req *donorModels.UpdateProfileRequest) (*donorModels.DonorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
