package list_donors

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	donorModels "github.com/m04kA/SMC-DonorService/internal/service/donors/models"
)

const msgInvalidFilter = "некорректный параметр фильтрации"

type Handler struct {
	service DonorService
	logger  Logger
}

func NewHandler(service DonorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &donorModels.ListDonorsRequest{}

	query := r.URL.Query()
	for param, dst := range map[string]**bool{
		"isActive":    &req.IsActive,
		"isAdmin":     &req.IsAdmin,
		"isSuspended": &req.IsSuspended,
	} {
		raw := query.Get(param)
		if raw == "" {
			continue
		}

		value, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /admin/users - Invalid filter %s=%s", param, raw)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		*dst = &value
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /admin/users - Failed to list donors: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
