package complete_appointments

import (
	"context"

	completeAppointments "github.com/m04kA/SMC-DonorService/internal/usecase/complete_appointments"
)

type CompleteAppointmentsUseCase interface {
	Execute(ctx context.Context) (*completeAppointments.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
