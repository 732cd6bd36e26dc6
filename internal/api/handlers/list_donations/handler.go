package list_donations

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	donationModels "github.com/m04kA/SMC-DonorService/internal/service/donations/models"
)

const msgInvalidDonorID = "некорректный параметр donorId"

type Handler struct {
	service DonationService
	logger  Logger
}

func NewHandler(service DonationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/donations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &donationModels.ListDonationsRequest{}

	if raw := r.URL.Query().Get("donorId"); raw != "" {
		donorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /admin/donations - Invalid donorId=%s", raw)
			handlers.RespondBadRequest(w, msgInvalidDonorID)
			return
		}
		req.DonorID = &donorID
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /admin/donations - Failed to list donations: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
