package create_donor

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/service/donors"
	donorModels "github.com/m04kA/SMC-DonorService/internal/service/donors/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные донора"
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

// Handle POST /api/v1/admin/users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req donorModels.CreateDonorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	donor, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, donors.ErrInvalidInput):
			h.logger.Warn("POST /admin/users - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, donors.ErrDuplicateDonor):
			h.logger.Warn("POST /admin/users - Duplicate donor: email=%s", req.Email)
			handlers.RespondConflict(w, msgDuplicateDonor)

		default:
			h.logger.Error("POST /admin/users - Failed to create donor: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/users - Donor created: donor_id=%d", donor.ID)
	handlers.RespondJSON(w, http.StatusCreated, donor)
}
