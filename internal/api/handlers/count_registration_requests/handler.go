package count_registration_requests

import (
	"net/http"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
)

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

// Handle GET /api/v1/admin/registration-requests/count
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CountPending(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/registration-requests/count - Failed to count requests: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
