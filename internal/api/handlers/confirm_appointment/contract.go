package confirm_appointment

import (
	"context"

	confirmAppointment "github.com/m04kA/SMC-DonorService/internal/usecase/confirm_appointment"
)

type ConfirmAppointmentUseCase interface {
	Execute(ctx context.Context, req *confirmAppointment.Request) (*confirmAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
