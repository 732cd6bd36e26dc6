package list_suspensions

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	suspensionModels "github.com/m04kA/SMC-DonorService/internal/service/suspensions/models"
)

const msgInvalidDonorID = "некорректный параметр donorId"

type Handler struct {
	service SuspensionService
	logger  Logger
}

func NewHandler(service SuspensionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/suspensions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &suspensionModels.ListSuspensionsRequest{}

	if raw := r.URL.Query().Get("donorId"); raw != "" {
		donorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /admin/suspensions - Invalid donorId=%s", raw)
			handlers.RespondBadRequest(w, msgInvalidDonorID)
			return
		}
		req.DonorID = &donorID
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /admin/suspensions - Failed to list suspensions: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
