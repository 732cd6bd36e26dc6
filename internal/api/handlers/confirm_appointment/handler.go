package confirm_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/api/middleware"
	confirmAppointment "github.com/m04kA/SMC-DonorService/internal/usecase/confirm_appointment"
)

const (
	msgMissingUserID        = "отсутствует идентификатор пользователя"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgNotPending           = "запись уже обработана"
	msgNotProposedDate      = "дата не входит в предложенные"
	msgDateNotBookable      = "выбранная дата недоступна для донации"
	msgCapacityExceeded     = "на выбранную дату не осталось мест"
	msgDonorNotSchedulable  = "донор не может быть записан на донацию"
)

type Handler struct {
	useCase ConfirmAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/confirm - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req ConfirmAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, userID)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/confirm - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, confirmAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/confirm - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmAppointment.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/confirm - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmAppointment.ErrNotPending):
			h.logger.Warn("POST /appointments/{id}/confirm - Not pending: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, confirmAppointment.ErrNotProposedDate):
			h.logger.Warn("POST /appointments/{id}/confirm - Date not proposed: appointment_id=%d, date=%s",
				appointmentID, req.Date)
			handlers.RespondBadRequest(w, msgNotProposedDate)

		case errors.Is(err, confirmAppointment.ErrDateNotBookable):
			h.logger.Warn("POST /appointments/{id}/confirm - Date not bookable: appointment_id=%d, date=%s",
				appointmentID, req.Date)
			handlers.RespondConflict(w, msgDateNotBookable)

		case errors.Is(err, confirmAppointment.ErrCapacityExceeded):
			h.logger.Warn("POST /appointments/{id}/confirm - Capacity exceeded: appointment_id=%d, date=%s",
				appointmentID, req.Date)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, confirmAppointment.ErrDonorNotSchedulable):
			h.logger.Warn("POST /appointments/{id}/confirm - Donor not schedulable: appointment_id=%d", appointmentID)
			handlers.RespondUnprocessableEntity(w, msgDonorNotSchedulable)

		case errors.Is(err, confirmAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /appointments/{id}/confirm - Failed to confirm: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/confirm - Appointment confirmed: appointment_id=%d, date=%s, user_id=%d",
		result.ID, result.ConfirmedDate, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
