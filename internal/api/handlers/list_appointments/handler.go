package list_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/service/appointments"
	appointmentModels "github.com/m04kA/SMC-DonorService/internal/service/appointments/models"
)

const (
	msgInvalidDonorID = "некорректный параметр donorId"
	msgInvalidStatus  = "некорректный статус записи"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &appointmentModels.ListAppointmentsRequest{}

	query := r.URL.Query()
	if raw := query.Get("donorId"); raw != "" {
		donorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /admin/appointments - Invalid donorId=%s", raw)
			handlers.RespondBadRequest(w, msgInvalidDonorID)
			return
		}
		req.DonorID = &donorID
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /admin/appointments - Failed to list appointments: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
