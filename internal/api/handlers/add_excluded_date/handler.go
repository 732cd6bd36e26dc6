package add_excluded_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/service/schedule"
	scheduleModels "github.com/m04kA/SMC-DonorService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные исключённой даты"
	msgDuplicateDate      = "дата уже исключена"
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

// Handle POST /api/v1/admin/excluded-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req scheduleModels.AddExcludedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/excluded-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddExcluded(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/excluded-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, schedule.ErrDuplicateExcludedDate):
			h.logger.Warn("POST /admin/excluded-dates - Duplicate date: date=%s", req.Date)
			handlers.RespondConflict(w, msgDuplicateDate)

		default:
			h.logger.Error("POST /admin/excluded-dates - Failed to add excluded date: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/excluded-dates - Excluded date added: id=%d, date=%s", result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
