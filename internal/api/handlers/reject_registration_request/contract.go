package reject_registration_request

import (
	"context"

	registrationModels "github.com/m04kA/SMC-DonorService/internal/service/registrations/models"
)

type RegistrationService interface {
	Reject(ctx context.Context, id int64, adminID int64, req *registrationModels.RejectRequest) (*registrationModels.RegistrationRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
