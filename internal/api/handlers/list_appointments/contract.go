package list_appointments

import (
	"context"

	appointmentModels "github.com/m04kA/SMC-DonorService/internal/service/appointments/models"
)

type AppointmentService interface {
	List(ctx context.Context, req *appointmentModels.ListAppointmentsRequest) (*appointmentModels.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
