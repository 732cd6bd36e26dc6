package get_my_donations

import (
	"context"

	donationModels "github.com/m04kA/SMC-DonorService/internal/service/donations/models"
)

type DonationService interface {
	ListByDonor(ctx context.Context, donorID int64) (*donationModels.DonationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
