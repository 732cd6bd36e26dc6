package domain

import (
	"time"

	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Sex determines the donation eligibility interval
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// IsValid returns true for a known sex value
func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

// Donor represents a registered blood donor
type Donor struct {
	ID          int64
	Email       string
	ExternalID  *string // identity issued by the external auth provider
	FirstName   string
	LastName    string
	Phone       string
	Sex         Sex
	BloodType   string
	BirthDate   *types.Date
	IsAdmin     bool
	IsActive    bool
	IsSuspended bool

	// Denormalized donation history, refreshed whenever a donation is recorded
	LastDonationDate *types.Date
	TotalDonations   int
	NextDueDate      *types.Date

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DonorsFilter filters donor listings
type DonorsFilter struct {
	IsActive    *bool
	IsAdmin     *bool
	IsSuspended *bool
}

// DonationIntervalMonths returns the minimum wait between donations
func (d *Donor) DonationIntervalMonths() int {
	if d.Sex == SexMale {
		return MaleIntervalMonths
	}
	return FemaleIntervalMonths
}

// CanBeScheduled returns true if the donor may be proposed or confirmed an appointment
func (d *Donor) CanBeScheduled() bool {
	return d.IsActive && !d.IsSuspended
}
