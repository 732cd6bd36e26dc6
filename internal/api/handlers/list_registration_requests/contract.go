package list_registration_requests

import (
	"context"

	registrationModels "github.com/m04kA/SMC-DonorService/internal/service/registrations/models"
)

type RegistrationService interface {
	List(ctx context.Context, req *registrationModels.ListRequest) (*registrationModels.RegistrationRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
