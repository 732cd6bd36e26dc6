package domain

import (
	"time"

	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// AppointmentStatus represents the state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"   // waiting for the donor to pick a date
	StatusConfirmed AppointmentStatus = "confirmed" // one of the proposed dates reserved
	StatusCompleted AppointmentStatus = "completed" // converted into a donation record
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a donation appointment: three proposed dates
// offered by an admin, at most one of which gets confirmed.
type Appointment struct {
	ID      int64
	DonorID int64

	// Proposed dates, immutable after creation
	ProposedDate1 types.Date
	ProposedDate2 types.Date
	ProposedDate3 types.Date

	ConfirmedDate *types.Date
	Status        AppointmentStatus

	// Set when the confirmed date was chosen by an admin rather than the donor
	AdminModified bool
	ModifiedBy    *int64

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true once no further transition is allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeOverridden returns true if an admin may move the appointment to a new date
func (a *Appointment) CanBeOverridden() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsProposedDate reports whether d is one of the three proposed dates
func (a *Appointment) IsProposedDate(d types.Date) bool {
	return d.Equal(a.ProposedDate1) || d.Equal(a.ProposedDate2) || d.Equal(a.ProposedDate3)
}

// AppointmentsFilter filters appointment listings
type AppointmentsFilter struct {
	DonorID *int64
	Status  *AppointmentStatus
}
