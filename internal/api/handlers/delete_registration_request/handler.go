package delete_registration_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/service/registrations"
)

const (
	msgInvalidRequestID = "некорректный ID заявки"
	msgNotFound         = "заявка не найдена"
	msgStillPending     = "необработанную заявку нельзя удалить"
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

// Handle DELETE /api/v1/admin/registration-requests/{requestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/registration-requests/{id} - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	if err := h.service.Delete(r.Context(), requestID); err != nil {
		switch {
		case errors.Is(err, registrations.ErrRequestNotFound):
			h.logger.Warn("DELETE /admin/registration-requests/{id} - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, registrations.ErrRequestPending):
			h.logger.Warn("DELETE /admin/registration-requests/{id} - Still pending: request_id=%d", requestID)
			handlers.RespondConflict(w, msgStillPending)

		default:
			h.logger.Error("DELETE /admin/registration-requests/{id} - Failed to delete: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/registration-requests/{id} - Request deleted: request_id=%d", requestID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
