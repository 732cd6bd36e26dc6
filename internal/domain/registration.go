package domain

import (
	"time"

	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// RegistrationRequestStatus represents the state of a registration request
type RegistrationRequestStatus string

const (
	RequestStatusPending  RegistrationRequestStatus = "pending"
	RequestStatusApproved RegistrationRequestStatus = "approved"
	RequestStatusRejected RegistrationRequestStatus = "rejected"
)

// RegistrationRequest is an unauthenticated identity claim waiting for
// an admin decision. At most one pending request may exist per external
// identity at any time.
type RegistrationRequest struct {
	ID         int64
	Email      string
	ExternalID string // identity issued by the external auth provider

	// Self-declared profile
	FirstName string
	LastName  string
	Phone     string
	Sex       Sex
	BirthDate *types.Date

	Status RegistrationRequestStatus

	// Set when the request was bound to an already-existing donor
	AssociatedDonorID *int64

	ProcessedBy   *int64
	ProcessedAt   *time.Time
	RejectionNote string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true while the request still awaits a decision
func (r *RegistrationRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}
