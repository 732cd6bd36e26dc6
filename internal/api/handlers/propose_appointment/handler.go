package propose_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	proposeAppointment "github.com/m04kA/SMC-DonorService/internal/usecase/propose_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput        = "некорректные данные: требуются три различные даты"
	msgDonorNotFound       = "донор не найден"
	msgDonorNotSchedulable = "донор не может быть записан на донацию"
	msgPendingExists       = "у донора уже есть необработанная запись"
	msgDateNotBookable     = "одна из дат недоступна для донации"
)

type Handler struct {
	useCase ProposeAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ProposeAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/appointments/propose
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ProposeAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/appointments/propose - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/appointments/propose - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, proposeAppointment.ErrInvalidInput):
			h.logger.Warn("POST /admin/appointments/propose - Invalid input: donor_id=%d, error=%v",
				req.DonorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, proposeAppointment.ErrDonorNotFound):
			h.logger.Warn("POST /admin/appointments/propose - Donor not found: donor_id=%d", req.DonorID)
			handlers.RespondNotFound(w, msgDonorNotFound)

		case errors.Is(err, proposeAppointment.ErrDonorNotSchedulable):
			h.logger.Warn("POST /admin/appointments/propose - Donor not schedulable: donor_id=%d", req.DonorID)
			handlers.RespondUnprocessableEntity(w, msgDonorNotSchedulable)

		case errors.Is(err, proposeAppointment.ErrPendingExists):
			h.logger.Warn("POST /admin/appointments/propose - Pending exists: donor_id=%d", req.DonorID)
			handlers.RespondConflict(w, msgPendingExists)

		case errors.Is(err, proposeAppointment.ErrDateNotBookable):
			h.logger.Warn("POST /admin/appointments/propose - Date not bookable: donor_id=%d, error=%v",
				req.DonorID, err)
			handlers.RespondBadRequest(w, msgDateNotBookable)

		default:
			h.logger.Error("POST /admin/appointments/propose - Failed to propose: donor_id=%d, error=%v",
				req.DonorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/appointments/propose - Appointment proposed: appointment_id=%d, donor_id=%d",
		result.ID, result.DonorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
