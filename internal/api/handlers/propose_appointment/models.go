package propose_appointment

import (
	"time"

	proposeAppointment "github.com/m04kA/SMC-DonorService/internal/usecase/propose_appointment"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// ProposeAppointmentRequest HTTP request model
type ProposeAppointmentRequest struct {
	DonorID int64    `json:"donorId"`
	Dates   []string `json:"dates"` // ["2025-10-15", ...]
	Notes   *string  `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64    `json:"id"`
	DonorID       int64    `json:"donorId"`
	ProposedDates []string `json:"proposedDates"`
	Status        string   `json:"status"`
	Notes         *string  `json:"notes,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ProposeAppointmentRequest) ToUseCaseRequest() (*proposeAppointment.Request, error) {
	dates := make([]types.Date, 0, len(r.Dates))
	for _, raw := range r.Dates {
		date, err := types.NewDateFromString(raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	return &proposeAppointment.Request{
		DonorID: r.DonorID,
		Dates:   dates,
		Notes:   r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *proposeAppointment.Response) *AppointmentResponse {
	dates := make([]string, 0, len(resp.ProposedDates))
	for _, date := range resp.ProposedDates {
		dates = append(dates, date.String())
	}

	return &AppointmentResponse{
		ID:            resp.ID,
		DonorID:       resp.DonorID,
		ProposedDates: dates,
		Status:        resp.Status,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
