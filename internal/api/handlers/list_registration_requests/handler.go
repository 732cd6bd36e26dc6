package list_registration_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/service/registrations"
	registrationModels "github.com/m04kA/SMC-DonorService/internal/service/registrations/models"
)

const msgInvalidStatus = "некорректный статус заявки"

type Handler struct {
	service RegistrationService
	logger  Logger
}

func NewHandler(service RegistrationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/registration-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &registrationModels.ListRequest{}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, registrations.ErrInvalidInput):
			h.logger.Warn("GET /admin/registration-requests - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /admin/registration-requests - Failed to list requests: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
