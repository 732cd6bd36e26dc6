package create_donation

import (
	"context"

	donationModels "github.com/m04kA/SMC-DonorService/internal/service/donations/models"
)

type DonationService interface {
	Create(ctx context.Context, req *donationModels.CreateDonationRequest) (*donationModels.DonationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
