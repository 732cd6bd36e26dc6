package list_expiring_donors

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
)

const msgInvalidWindow = "некорректный параметр window"

type Handler struct {
	service           DonorService
	defaultWindowDays int
	logger            Logger
}

func NewHandler(service DonorService, defaultWindowDays int, logger Logger) *Handler {
	return &Handler{
		service:           service,
		defaultWindowDays: defaultWindowDays,
		logger:            logger,
	}
}

// Handle GET /api/v1/admin/users/expiring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	windowDays := h.defaultWindowDays

	if raw := r.URL.Query().Get("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /admin/users/expiring - Invalid window=%s", raw)
			handlers.RespondBadRequest(w, msgInvalidWindow)
			return
		}
		windowDays = parsed
	}

	result, err := h.service.ListExpiring(r.Context(), windowDays)
	if err != nil {
		h.logger.Error("GET /admin/users/expiring - Failed to list expiring donors: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
