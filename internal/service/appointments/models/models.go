package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListAppointmentsRequest запрос на получение списка записей
type ListAppointmentsRequest struct {
	DonorID *int64  `json:"donorId,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		DonorID: r.DonorID,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи на донацию
type AppointmentResponse struct {
	ID            int64    `json:"id"`
	DonorID       int64    `json:"donorId"`
	ProposedDates []string `json:"proposedDates"` // ["2025-10-15", ...]
	ConfirmedDate *string  `json:"confirmedDate,omitempty"`
	Status        string   `json:"status"`
	AdminModified bool     `json:"adminModified"`
	ModifiedBy    *int64   `json:"modifiedBy,omitempty"`
	Notes         *string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:      a.ID,
		DonorID: a.DonorID,
		ProposedDates: []string{
			a.ProposedDate1.String(),
			a.ProposedDate2.String(),
			a.ProposedDate3.String(),
		},
		Status:        string(a.Status),
		AdminModified: a.AdminModified,
		ModifiedBy:    a.ModifiedBy,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}

	if a.ConfirmedDate != nil {
		confirmed := a.ConfirmedDate.String()
		resp.ConfirmedDate = &confirmed
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if aResp := FromDomainAppointment(a); aResp != nil {
			resp.Appointments = append(resp.Appointments, *aResp)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
