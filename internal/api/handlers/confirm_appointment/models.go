package confirm_appointment

import (
	"time"

	confirmAppointment "github.com/m04kA/SMC-DonorService/internal/usecase/confirm_appointment"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// ConfirmAppointmentRequest HTTP request model
type ConfirmAppointmentRequest struct {
	Date string `json:"date"` // "2025-10-15"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64  `json:"id"`
	DonorID       int64  `json:"donorId"`
	ConfirmedDate string `json:"confirmedDate"`
	Status        string `json:"status"`
	AdminModified bool   `json:"adminModified"`
	ModifiedBy    *int64 `json:"modifiedBy,omitempty"`
	UpdatedAt     string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmAppointmentRequest) ToUseCaseRequest(appointmentID, requesterID int64) (*confirmAppointment.Request, error) {
	date, err := types.NewDateFromString(r.Date)
	if err != nil {
		return nil, err
	}

	return &confirmAppointment.Request{
		AppointmentID: appointmentID,
		RequesterID:   requesterID,
		Date:          date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		DonorID:       resp.DonorID,
		ConfirmedDate: resp.ConfirmedDate.String(),
		Status:        resp.Status,
		AdminModified: resp.AdminModified,
		ModifiedBy:    resp.ModifiedBy,
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
