package get_my_donations

import (
	"net/http"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/api/middleware"
)

const msgMissingUserID = "отсутствует идентификатор пользователя"

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

// Handle GET /api/v1/me/donations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	donations, err := h.service.ListByDonor(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /me/donations - Failed to list donations: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, donations)
}
