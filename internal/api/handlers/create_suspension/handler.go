package create_suspension

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/api/middleware"
	"github.com/m04kA/SMC-DonorService/internal/service/suspensions"
	suspensionModels "github.com/m04kA/SMC-DonorService/internal/service/suspensions/models"
)

const (
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные отстранения"
	msgDonorNotFound      = "донор не найден"
)

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

// Handle POST /api/v1/admin/suspensions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req suspensionModels.CreateSuspensionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/suspensions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), adminID, &req)
	if err != nil {
		switch {
		case errors.Is(err, suspensions.ErrInvalidInput):
			h.logger.Warn("POST /admin/suspensions - Invalid input: donor_id=%d, error=%v", req.DonorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, suspensions.ErrDonorNotFound):
			h.logger.Warn("POST /admin/suspensions - Donor not found: donor_id=%d", req.DonorID)
			handlers.RespondNotFound(w, msgDonorNotFound)

		default:
			h.logger.Error("POST /admin/suspensions - Failed to create suspension: donor_id=%d, error=%v",
				req.DonorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/suspensions - Suspension created: suspension_id=%d, donor_id=%d, admin_id=%d",
		result.ID, result.DonorID, adminID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
