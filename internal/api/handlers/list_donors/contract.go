package list_donors

import (
	"context"

	donorModels "github.com/m04kA/SMC-DonorService/internal/service/donors/models"
)

type DonorService interface {
	List(ctx context.Context, req *donorModels.ListDonorsRequest) (*donorModels.DonorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
