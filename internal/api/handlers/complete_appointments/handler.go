package complete_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
)

// CompleteResponse HTTP response model
type CompleteResponse struct {
	Completed int `json:"completed"`
}

type Handler struct {
	useCase CompleteAppointmentsUseCase
	logger  Logger
}

func NewHandler(useCase CompleteAppointmentsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/appointments/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/appointments/complete - Failed to complete appointments: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/appointments/complete - Completed %d appointments", result.Completed)
	handlers.RespondJSON(w, http.StatusOK, CompleteResponse{Completed: result.Completed})
}
