package domain

import (
	"time"

	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Donation is the historical record of a completed donation.
// Append-only; only the notes may be corrected afterwards.
type Donation struct {
	ID           int64
	DonorID      int64
	DonationDate types.Date
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DonationsFilter narrows donation listings.
type DonationsFilter struct {
	DonorID *int64
}
