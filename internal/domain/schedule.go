package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// WeekdaySetting is the per-weekday part of the donation schedule
type WeekdaySetting struct {
	Enabled  bool
	Capacity int
}

// Schedule is the deployment-wide donation calendar configuration:
// one setting per weekday. Exactly one row exists.
type Schedule struct {
	ID        int64
	Monday    WeekdaySetting
	Tuesday   WeekdaySetting
	Wednesday WeekdaySetting
	Thursday  WeekdaySetting
	Friday    WeekdaySetting
	Saturday  WeekdaySetting
	Sunday    WeekdaySetting

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Setting returns the configuration for the given weekday
func (s *Schedule) Setting(weekday time.Weekday) WeekdaySetting {
	switch weekday {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	default:
		return s.Sunday
	}
}

// Validate checks the schedule invariant: every enabled day needs capacity >= 1.
// Capacity on disabled days is advisory only.
func (s *Schedule) Validate() error {
	days := map[string]WeekdaySetting{
		"monday":    s.Monday,
		"tuesday":   s.Tuesday,
		"wednesday": s.Wednesday,
		"thursday":  s.Thursday,
		"friday":    s.Friday,
		"saturday":  s.Saturday,
		"sunday":    s.Sunday,
	}
	for name, day := range days {
		if day.Enabled && day.Capacity < MinWeekdayCapacity {
			return fmt.Errorf("%s is enabled but has capacity %d", name, day.Capacity)
		}
	}
	return nil
}

// ExcludedDate is a calendar date on which no appointments may be
// proposed or confirmed regardless of the weekday configuration.
// Already-confirmed appointments on that date are not retro-invalidated.
type ExcludedDate struct {
	ID     int64
	Day    types.Date
	Reason string

	CreatedAt time.Time
}
