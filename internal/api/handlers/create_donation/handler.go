package create_donation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/service/donations"
	donationModels "github.com/m04kA/SMC-DonorService/internal/service/donations/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные донации"
	msgDonorNotFound      = "донор не найден"
)

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

// Handle POST /api/v1/admin/donations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req donationModels.CreateDonationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/donations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, donations.ErrInvalidInput):
			h.logger.Warn("POST /admin/donations - Invalid input: donor_id=%d, error=%v", req.DonorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, donations.ErrDonorNotFound):
			h.logger.Warn("POST /admin/donations - Donor not found: donor_id=%d", req.DonorID)
			handlers.RespondNotFound(w, msgDonorNotFound)

		default:
			h.logger.Error("POST /admin/donations - Failed to create donation: donor_id=%d, error=%v",
				req.DonorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/donations - Donation recorded: donation_id=%d, donor_id=%d", result.ID, result.DonorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
