package override_appointment

import (
	"time"

	overrideAppointment "github.com/m04kA/SMC-DonorService/internal/usecase/override_appointment"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// OverrideAppointmentRequest HTTP request model
type OverrideAppointmentRequest struct {
	Date  string  `json:"date"` // "2025-10-15"
	Notes *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	DonorID       int64   `json:"donorId"`
	ConfirmedDate string  `json:"confirmedDate"`
	Status        string  `json:"status"`
	AdminModified bool    `json:"adminModified"`
	ModifiedBy    int64   `json:"modifiedBy"`
	Notes         *string `json:"notes,omitempty"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *OverrideAppointmentRequest) ToUseCaseRequest(appointmentID, adminID int64) (*overrideAppointment.Request, error) {
	date, err := types.NewDateFromString(r.Date)
	if err != nil {
		return nil, err
	}

	return &overrideAppointment.Request{
		AppointmentID: appointmentID,
		AdminID:       adminID,
		Date:          date,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *overrideAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		DonorID:       resp.DonorID,
		ConfirmedDate: resp.ConfirmedDate.String(),
		Status:        resp.Status,
		AdminModified: resp.AdminModified,
		ModifiedBy:    resp.ModifiedBy,
		Notes:         resp.Notes,
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
