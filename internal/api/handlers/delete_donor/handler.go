package delete_donor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/service/donors"
)

const (
	msgInvalidUserID = "некорректный ID донора"
	msgNotFound      = "донор не найден"
)

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

// Handle DELETE /api/v1/admin/users/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		switch {
		case errors.Is(err, donors.ErrDonorNotFound):
			h.logger.Warn("DELETE /admin/users/{id} - Donor not found: donor_id=%d", userID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/users/{id} - Failed to delete donor: donor_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/users/{id} - Donor deleted: donor_id=%d", userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
