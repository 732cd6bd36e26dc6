package associate_registration_request

import (
	"context"

	registrationModels "github.com/m04kA/SMC-DonorService/internal/service/registrations/models"
)

type RegistrationService interface {
	Associate(ctx context.Context, id int64, adminID int64, req *registrationModels.AssociateRequest) (*registrationModels.RegistrationRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
