package models

import (
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Request модели

// CreateDonationRequest запрос на добавление донации в историю
type CreateDonationRequest struct {
	DonorID      int64      `json:"donorId"`
	DonationDate types.Date `json:"donationDate"`
	Notes        string     `json:"notes,omitempty"`
}

// ToDomainDonation конвертирует запрос в domain модель
func (r *CreateDonationRequest) ToDomainDonation() *domain.Donation {
	return &domain.Donation{
		DonorID:      r.DonorID,
		DonationDate: r.DonationDate,
		Notes:        r.Notes,
	}
}

// ListDonationsRequest запрос на получение списка донаций
type ListDonationsRequest struct {
	DonorID *int64 `json:"donorId,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListDonationsRequest) ToDomainFilter() domain.DonationsFilter {
	return domain.DonationsFilter{
		DonorID: r.DonorID,
	}
}

// UpdateDonationNotesRequest запрос на исправление примечаний к донации
type UpdateDonationNotesRequest struct {
	Notes string `json:"notes"`
}

// Response модели

// DonationResponse ответ с данными донации
type DonationResponse struct {
	ID           int64  `json:"id"`
	DonorID      int64  `json:"donorId"`
	DonationDate string `json:"donationDate"` // "2025-10-15"
	Notes        string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DonationListResponse ответ со списком донаций
type DonationListResponse struct {
	Donations []DonationResponse `json:"donations"`
}

// Методы конвертации

// FromDomainDonation конвертирует domain модель в DTO
func FromDomainDonation(d *domain.Donation) *DonationResponse {
	if d == nil {
		return nil
	}

	return &DonationResponse{
		ID:           d.ID,
		DonorID:      d.DonorID,
		DonationDate: d.DonationDate.String(),
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// FromDomainDonationList конвертирует список domain моделей в DTO
func FromDomainDonationList(donations []*domain.Donation) *DonationListResponse {
	resp := &DonationListResponse{
		Donations: make([]DonationResponse, 0, len(donations)),
	}

	for _, d := range donations {
		if dResp := FromDomainDonation(d); dResp != nil {
			resp.Donations = append(resp.Donations, *dResp)
		}
	}

	return resp
}
