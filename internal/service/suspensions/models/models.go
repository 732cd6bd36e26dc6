package models

import (
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Request модели

// CreateSuspensionRequest запрос на отстранение донора
type CreateSuspensionRequest struct {
	DonorID        int64       `json:"donorId"`
	StartDate      *types.Date `json:"startDate,omitempty"` // по умолчанию сегодня
	DurationMonths int         `json:"durationMonths"`
	Reason         string      `json:"reason,omitempty"`
}

// ListSuspensionsRequest запрос на получение списка отстранений
type ListSuspensionsRequest struct {
	DonorID *int64 `json:"donorId,omitempty"`
}

// Response модели

// SuspensionResponse ответ с данными отстранения
type SuspensionResponse struct {
	ID             int64  `json:"id"`
	DonorID        int64  `json:"donorId"`
	StartDate      string `json:"startDate"` // "2025-10-15"
	DurationMonths int    `json:"durationMonths"`
	EndDate        string `json:"endDate"`
	Reason         string `json:"reason,omitempty"`
	IsActive       bool   `json:"isActive"`
	CreatedBy      int64  `json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SuspensionListResponse ответ со списком отстранений
type SuspensionListResponse struct {
	Suspensions []SuspensionResponse `json:"suspensions"`
}

// Методы конвертации

// FromDomainSuspension конвертирует domain модель в DTO
func FromDomainSuspension(s *domain.Suspension) *SuspensionResponse {
	if s == nil {
		return nil
	}

	return &SuspensionResponse{
		ID:             s.ID,
		DonorID:        s.DonorID,
		StartDate:      s.StartDate.String(),
		DurationMonths: s.DurationMonths,
		EndDate:        s.EndDate.String(),
		Reason:         s.Reason,
		IsActive:       s.IsActive,
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// FromDomainSuspensionList конвертирует список domain моделей в DTO
func FromDomainSuspensionList(suspensions []*domain.Suspension) *SuspensionListResponse {
	resp := &SuspensionListResponse{
		Suspensions: make([]SuspensionResponse, 0, len(suspensions)),
	}

	for _, s := range suspensions {
		if sResp := FromDomainSuspension(s); sResp != nil {
			resp.Suspensions = append(resp.Suspensions, *sResp)
		}
	}

	return resp
}
