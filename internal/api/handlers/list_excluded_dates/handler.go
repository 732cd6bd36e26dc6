package list_excluded_dates

import (
	"net/http"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/excluded-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListExcluded(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/excluded-dates - Failed to list excluded dates: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
