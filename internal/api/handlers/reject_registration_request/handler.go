package reject_registration_request

import (
	"errors"
	"io"
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
	msgInvalidInput       = "некорректные данные заявки"
	msgNotFound           = "заявка не найдена"
	msgAlreadyProcessed   = "заявка уже обработана"
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

// Handle POST /api/v1/admin/registration-requests/{requestId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/registration-requests/{id}/reject - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	// Примечание к отклонению опционально, пустое тело допустимо
	var req registrationModels.RejectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /admin/registration-requests/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Reject(r.Context(), requestID, adminID, &req)
	if err != nil {
		switch {
		case errors.Is(err, registrations.ErrRequestNotFound):
			h.logger.Warn("POST /admin/registration-requests/{id}/reject - Request not found: request_id=%d",
				requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, registrations.ErrAlreadyProcessed):
			h.logger.Warn("POST /admin/registration-requests/{id}/reject - Already processed: request_id=%d",
				requestID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		case errors.Is(err, registrations.ErrInvalidInput):
			h.logger.Warn("POST /admin/registration-requests/{id}/reject - Invalid input: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/registration-requests/{id}/reject - Failed to reject: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/registration-requests/{id}/reject - Request rejected: request_id=%d, admin_id=%d",
		requestID, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
