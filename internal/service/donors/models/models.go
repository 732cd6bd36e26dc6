package models

import (
	"time"

	"github.com/m04kA/SMC-DonorService/internal/domain"
	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Request модели

// CreateDonorRequest запрос на создание донора администратором
type CreateDonorRequest struct {
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Phone     string      `json:"phone,omitempty"`
	Sex       string      `json:"sex"`
	BloodType string      `json:"bloodType,omitempty"`
	BirthDate *types.Date `json:"birthDate,omitempty"`
	IsAdmin   bool        `json:"isAdmin,omitempty"`
}

// UpdateDonorRequest запрос на обновление профиля донора
// Нулевые поля не изменяются
type UpdateDonorRequest struct {
	Email     *string     `json:"email,omitempty"`
	FirstName *string     `json:"firstName,omitempty"`
	LastName  *string     `json:"lastName,omitempty"`
	Phone     *string     `json:"phone,omitempty"`
	BloodType *string     `json:"bloodType,omitempty"`
	BirthDate *types.Date `json:"birthDate,omitempty"`
	IsAdmin   *bool       `json:"isAdmin,omitempty"`
	IsActive  *bool       `json:"isActive,omitempty"`
}

// UpdateProfileRequest запрос донора на обновление собственного профиля
// Донор не может менять свои административные флаги
type UpdateProfileRequest struct {
	Email     *string     `json:"email,omitempty"`
	FirstName *string     `json:"firstName,omitempty"`
	LastName  *string     `json:"lastName,omitempty"`
	Phone     *string     `json:"phone,omitempty"`
	BloodType *string     `json:"bloodType,omitempty"`
	BirthDate *types.Date `json:"birthDate,omitempty"`
}

// ListDonorsRequest запрос на получение списка доноров
type ListDonorsRequest struct {
	IsActive    *bool `json:"isActive,omitempty"`
	IsAdmin     *bool `json:"isAdmin,omitempty"`
	IsSuspended *bool `json:"isSuspended,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListDonorsRequest) ToDomainFilter() domain.DonorsFilter {
	return domain.DonorsFilter{
		IsActive:    r.IsActive,
		IsAdmin:     r.IsAdmin,
		IsSuspended: r.IsSuspended,
	}
}

// Response модели

// DonorResponse ответ с данными донора
// NextDueDate учитывает активное отстранение, если оно заканчивается
// позже расчётного срока
type DonorResponse struct {
	ID               int64   `json:"id"`
	Email            string  `json:"email"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Phone            string  `json:"phone,omitempty"`
	Sex              string  `json:"sex"`
	BloodType        string  `json:"bloodType,omitempty"`
	BirthDate        *string `json:"birthDate,omitempty"` // "1990-04-21"
	IsAdmin          bool    `json:"isAdmin"`
	IsActive         bool    `json:"isActive"`
	IsSuspended      bool    `json:"isSuspended"`
	LastDonationDate *string `json:"lastDonationDate,omitempty"`
	TotalDonations   int     `json:"totalDonations"`
	NextDueDate      *string `json:"nextDueDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DonorListResponse ответ со списком доноров
type DonorListResponse struct {
	Donors []DonorResponse `json:"donors"`
}

// Методы конвертации

// FromDomainDonor конвертирует domain модель в DTO
// effectiveDueDate перекрывает расчётный срок следующей донации
func FromDomainDonor(d *domain.Donor, effectiveDueDate *types.Date) *DonorResponse {
	if d == nil {
		return nil
	}

	resp := &DonorResponse{
		ID:             d.ID,
		Email:          d.Email,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Phone:          d.Phone,
		Sex:            string(d.Sex),
		BloodType:      d.BloodType,
		IsAdmin:        d.IsAdmin,
		IsActive:       d.IsActive,
		IsSuspended:    d.IsSuspended,
		TotalDonations: d.TotalDonations,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}

	resp.BirthDate = formatDate(d.BirthDate)
	resp.LastDonationDate = formatDate(d.LastDonationDate)

	if effectiveDueDate != nil {
		resp.NextDueDate = formatDate(effectiveDueDate)
	} else {
		resp.NextDueDate = formatDate(d.NextDueDate)
	}

	return resp
}

func formatDate(d *types.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
