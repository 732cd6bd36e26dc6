package get_donor_donations

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
)

const msgInvalidUserID = "некорректный ID донора"

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

// Handle GET /api/v1/admin/donors/{userId}/donations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /admin/donors/{id}/donations - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.service.ListByDonor(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /admin/donors/{id}/donations - Failed to list donations: donor_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
