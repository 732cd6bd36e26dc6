package list_expiring_donors

import (
	"context"

	donorModels "github.com/m04kA/SMC-DonorService/internal/service/donors/models"
)

type DonorService interface {
	ListExpiring(ctx context.Context, windowDays int) (*donorModels.DonorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
