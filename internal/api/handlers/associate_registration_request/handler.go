package associate_registration_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/api/middleware"
	"github.com/m04kA/SMC-DonorService/internal/service/registrations"
	registrationModels "github.com/m04kA/SMC-DonorService/internal/service/registrations/models"
)

const (
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "заявка не найдена"
	msgDonorNotFound      = "донор не найден"
	msgAlreadyProcessed   = "заявка уже обработана"
	msgDonorAlreadyBound  = "у донора уже есть внешняя учётная запись"
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

// Handle POST /api/v1/admin/registration-requests/{requestId}/associate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/registration-requests/{id}/associate - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req registrationModels.AssociateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/registration-requests/{id}/associate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Associate(r.Context(), requestID, adminID, &req)
	if err != nil {
		switch {
		case errors.Is(err, registrations.ErrRequestNotFound):
			h.logger.Warn("POST /admin/registration-requests/{id}/associate - Request not found: request_id=%d",
				requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, registrations.ErrDonorNotFound):
			h.logger.Warn("POST /admin/registration-requests/{id}/associate - Donor not found: request_id=%d, donor_id=%d",
				requestID, req.DonorID)
			handlers.RespondNotFound(w, msgDonorNotFound)

		case errors.Is(err, registrations.ErrAlreadyProcessed):
			h.logger.Warn("POST /admin/registration-requests/{id}/associate - Already processed: request_id=%d",
				requestID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		case errors.Is(err, registrations.ErrDonorAlreadyBound):
			h.logger.Warn("POST /admin/registration-requests/{id}/associate - Donor already bound: request_id=%d, donor_id=%d",
				requestID, req.DonorID)
			handlers.RespondConflict(w, msgDonorAlreadyBound)

		case errors.Is(err, registrations.ErrAlreadyRegistered):
			h.logger.Warn("POST /admin/registration-requests/{id}/associate - Already registered: request_id=%d",
				requestID)
			handlers.RespondConflict(w, msgAlreadyRegistered)

		default:
			h.logger.Error("POST /admin/registration-requests/{id}/associate - Failed to associate: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/registration-requests/{id}/associate - Request associated: request_id=%d, donor_id=%d, admin_id=%d",
		requestID, req.DonorID, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
