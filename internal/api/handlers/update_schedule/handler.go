package update_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/service/schedule"
	scheduleModels "github.com/m04kA/SMC-DonorService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание: открытый день требует вместимость не меньше 1"
	msgNotFound           = "расписание не настроено"
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

// Handle PUT /api/v1/admin/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req scheduleModels.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /admin/schedule - Invalid schedule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, schedule.ErrScheduleNotFound):
			h.logger.Warn("PUT /admin/schedule - Schedule not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /admin/schedule - Failed to update schedule: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/schedule - Schedule updated")
	handlers.RespondJSON(w, http.StatusOK, result)
}
