package override_appointment

import (
	"context"

	overrideAppointment "github.com/m04kA/SMC-DonorService/internal/usecase/override_appointment"
)

type OverrideAppointmentUseCase interface {
	Execute(ctx context.Context, req *overrideAppointment.Request) (*overrideAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
