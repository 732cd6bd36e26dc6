package update_donor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/service/donors"
	donorModels "github.com/m04kA/SMC-DonorService/internal/service/donors/models"
)

const (
	msgInvalidUserID      = "некорректный ID донора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные донора"
	msgNotFound           = "донор не найден"
	msgDuplicateDonor     = "донор с таким email уже существует"
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

// Handle PUT /api/v1/admin/users/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req donorModels.UpdateDonorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	donor, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, donors.ErrDonorNotFound):
			h.logger.Warn("PUT /admin/users/{id} - Donor not found: donor_id=%d", userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, donors.ErrDuplicateDonor):
			h.logger.Warn("PUT /admin/users/{id} - Duplicate email: donor_id=%d", userID)
			handlers.RespondConflict(w, msgDuplicateDonor)

		case errors.Is(err, donors.ErrInvalidInput):
			h.logger.Warn("PUT /admin/users/{id} - Invalid input: donor_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /admin/users/{id} - Failed to update donor: donor_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/users/{id} - Donor updated: donor_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, donor)
}
