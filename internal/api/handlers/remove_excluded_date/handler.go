package remove_excluded_date

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/service/schedule"
)

const (
	msgInvalidDateID = "некорректный ID исключённой даты"
	msgNotFound      = "исключённая дата не найдена"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/excluded-dates/{dateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dateID, err := strconv.ParseInt(vars["dateId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/excluded-dates/{id} - Invalid date ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateID)
		return
	}

	if err := h.service.RemoveExcluded(r.Context(), dateID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrExcludedDateNotFound):
			h.logger.Warn("DELETE /admin/excluded-dates/{id} - Date not found: date_id=%d", dateID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/excluded-dates/{id} - Failed to remove date: date_id=%d, error=%v",
				dateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/excluded-dates/{id} - Excluded date removed: date_id=%d", dateID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
