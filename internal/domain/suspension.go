package domain

import (
	"time"

	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// Suspension temporarily blocks a donor from being scheduled
type Suspension struct {
	ID      int64
	DonorID int64

	StartDate      types.Date
	DurationMonths int
	EndDate        types.Date
	Reason         string

	IsActive  bool
	CreatedBy int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCurrent returns true if the suspension is active and has not run out
func (s *Suspension) IsCurrent(now time.Time) bool {
	return s.IsActive && types.NewDate(now).Before(s.EndDate)
}
