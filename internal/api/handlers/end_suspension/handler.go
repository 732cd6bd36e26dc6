package end_suspension

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/service/suspensions"
)

const (
	msgInvalidSuspensionID = "некорректный ID отстранения"
	msgNotFound            = "отстранение не найдено"
	msgAlreadyEnded        = "отстранение уже завершено"
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

// Handle PUT /api/v1/admin/suspensions/{suspensionId}/end
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	suspensionID, err := strconv.ParseInt(vars["suspensionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/suspensions/{id}/end - Invalid suspension ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSuspensionID)
		return
	}

	if err := h.service.End(r.Context(), suspensionID); err != nil {
		switch {
		case errors.Is(err, suspensions.ErrSuspensionNotFound):
			h.logger.Warn("PUT /admin/suspensions/{id}/end - Suspension not found: suspension_id=%d", suspensionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, suspensions.ErrAlreadyEnded):
			h.logger.Warn("PUT /admin/suspensions/{id}/end - Already ended: suspension_id=%d", suspensionID)
			handlers.RespondConflict(w, msgAlreadyEnded)

		default:
			h.logger.Error("PUT /admin/suspensions/{id}/end - Failed to end suspension: suspension_id=%d, error=%v",
				suspensionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/suspensions/{id}/end - Suspension ended: suspension_id=%d", suspensionID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
