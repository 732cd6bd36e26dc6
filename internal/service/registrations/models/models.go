package models

import (
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Request модели

// SubmitRequest заявка на регистрацию от неаутентифицированного пользователя
type SubmitRequest struct {
	Email      string      `json:"email"`
	ExternalID string      `json:"externalId"`
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	Phone      string      `json:"phone,omitempty"`
	Sex        string      `json:"sex"`
	BirthDate  *types.Date `json:"birthDate,omitempty"`
}

// ToDomainRequest конвертирует заявку в domain модель
func (r *SubmitRequest) ToDomainRequest() *domain.RegistrationRequest {
	return &domain.RegistrationRequest{
		Email:      r.Email,
		ExternalID: r.ExternalID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Phone:      r.Phone,
		Sex:        domain.Sex(r.Sex),
		BirthDate:  r.BirthDate,
		Status:     domain.RequestStatusPending,
	}
}

// InitialDonation необязательная первая донация, фиксируемая при одобрении
type InitialDonation struct {
	Date  types.Date `json:"date"`
	Notes string     `json:"notes,omitempty"`
}

// ApproveRequest запрос на одобрение заявки
// Администратор может поправить анкетные данные перед созданием донора
type ApproveRequest struct {
	Email           *string          `json:"email,omitempty"`
	FirstName       *string          `json:"firstName,omitempty"`
	LastName        *string          `json:"lastName,omitempty"`
	Phone           *string          `json:"phone,omitempty"`
	Sex             *string          `json:"sex,omitempty"`
	BloodType       *string          `json:"bloodType,omitempty"`
	BirthDate       *types.Date      `json:"birthDate,omitempty"`
	InitialDonation *InitialDonation `json:"initialDonation,omitempty"`
}

// AssociateRequest запрос на привязку заявки к существующему донору
type AssociateRequest struct {
	DonorID int64 `json:"donorId"`
}

// RejectRequest запрос на отклонение заявки
type RejectRequest struct {
	Note string `json:"note,omitempty"`
}

// ListRequest запрос на получение списка заявок
type ListRequest struct {
	Status *string `json:"status,omitempty"`
}

// Response модели

// RegistrationRequestResponse ответ с данными заявки
type RegistrationRequestResponse struct {
	ID                int64   `json:"id"`
	Email             string  `json:"email"`
	ExternalID        string  `json:"externalId"`
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Phone             string  `json:"phone,omitempty"`
	Sex               string  `json:"sex"`
	BirthDate         *string `json:"birthDate,omitempty"` // "1990-04-21"
	Status            string  `json:"status"`
	AssociatedDonorID *int64  `json:"associatedDonorId,omitempty"`
	ProcessedBy       *int64  `json:"processedBy,omitempty"`
	ProcessedAt       *string `json:"processedAt,omitempty"` // ISO 8601
	RejectionNote     string  `json:"rejectionNote,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegistrationRequestListResponse ответ со списком заявок
type RegistrationRequestListResponse struct {
	Requests []RegistrationRequestResponse `json:"requests"`
}

// PendingCountResponse число ожидающих заявок
type PendingCountResponse struct {
	Pending int `json:"pending"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.RegistrationRequest) *RegistrationRequestResponse {
	if r == nil {
		return nil
	}

	resp := &RegistrationRequestResponse{
		ID:                r.ID,
		Email:             r.Email,
		ExternalID:        r.ExternalID,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Phone:             r.Phone,
		Sex:               string(r.Sex),
		Status:            string(r.Status),
		AssociatedDonorID: r.AssociatedDonorID,
		ProcessedBy:       r.ProcessedBy,
		RejectionNote:     r.RejectionNote,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}

	if r.BirthDate != nil {
		birthDate := r.BirthDate.String()
		resp.BirthDate = &birthDate
	}
	if r.ProcessedAt != nil {
		processedAt := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processedAt
	}

	return resp
}

// FromDomainRequestList конвертирует список domain моделей в DTO
func FromDomainRequestList(requests []*domain.RegistrationRequest) *RegistrationRequestListResponse {
	resp := &RegistrationRequestListResponse{
		Requests: make([]RegistrationRequestResponse, 0, len(requests)),
	}

	for _, r := range requests {
		if rResp := FromDomainRequest(r); rResp != nil {
			resp.Requests = append(resp.Requests, *rResp)
		}
	}

	return resp
}

// ToDomainRequestStatus конвертирует строку в domain.RegistrationRequestStatus с валидацией
func ToDomainRequestStatus(status string) (domain.RegistrationRequestStatus, bool) {
	s := domain.RegistrationRequestStatus(status)

	switch s {
	case domain.RequestStatusPending, domain.RequestStatusApproved, domain.RequestStatusRejected:
		return s, true
	}

	return "", false
}
