package submit_registration_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/service/registrations"
	registrationModels "github.com/m04kA/SMC-DonorService/internal/service/registrations/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные заявки"
	msgDuplicateRequest   = "заявка на регистрацию уже находится на рассмотрении"
	msgAlreadyRegistered  = "учётная запись уже привязана к донору"
)

type Handler struct {
	service RegistrationService
	logger  Logger
}

func NewHandler(service RegistrationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/registration-request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req registrationModels.SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/registration-request - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, registrations.ErrInvalidInput):
			h.logger.Warn("POST /auth/registration-request - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, registrations.ErrDuplicateRequest):
			h.logger.Warn("POST /auth/registration-request - Duplicate request: external_id=%s", req.ExternalID)
			handlers.RespondConflict(w, msgDuplicateRequest)

		case errors.Is(err, registrations.ErrAlreadyRegistered):
			h.logger.Warn("POST /auth/registration-request - Already registered: external_id=%s", req.ExternalID)
			handlers.RespondConflict(w, msgAlreadyRegistered)

		default:
			h.logger.Error("POST /auth/registration-request - Failed to submit request: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/registration-request - Request submitted: request_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
