package override_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/api/middleware"
	overrideAppointment "github.com/m04kA/SMC-DonorService/internal/usecase/override_appointment"
)

const (
	msgMissingUserID        = "отсутствует идентификатор пользователя"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound             = "запись не найдена"
	msgTerminalState        = "завершённую или отменённую запись нельзя перенести"
	msgDateNotBookable      = "выбранная дата недоступна для донации"
	msgCapacityExceeded     = "на выбранную дату не осталось мест"
)

type Handler struct {
	useCase OverrideAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase OverrideAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req OverrideAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, adminID)
	if err != nil {
		h.logger.Warn("PUT /admin/appointments/{id} - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, overrideAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /admin/appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, overrideAppointment.ErrTerminalState):
			h.logger.Warn("PUT /admin/appointments/{id} - Terminal state: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgTerminalState)

		case errors.Is(err, overrideAppointment.ErrDateNotBookable):
			h.logger.Warn("PUT /admin/appointments/{id} - Date not bookable: appointment_id=%d, date=%s",
				appointmentID, req.Date)
			handlers.RespondConflict(w, msgDateNotBookable)

		case errors.Is(err, overrideAppointment.ErrCapacityExceeded):
			h.logger.Warn("PUT /admin/appointments/{id} - Capacity exceeded: appointment_id=%d, date=%s",
				appointmentID, req.Date)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, overrideAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /admin/appointments/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("PUT /admin/appointments/{id} - Failed to override: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/appointments/{id} - Appointment moved: appointment_id=%d, date=%s, admin_id=%d",
		result.ID, result.ConfirmedDate, adminID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
