package domain

// Eligibility intervals in calendar months, fixed by sex
const (
	MaleIntervalMonths   = 3
	FemaleIntervalMonths = 6
)

// Schedule defaults and validation constants
const (
	DefaultWeekdayCapacity = 10
	MinWeekdayCapacity     = 1
)

// Business validation constants
const (
	MaxNotesLength  = 500
	MaxReasonLength = 500

	// Lookahead window for the expiring-donors listing
	DefaultExpiringWindowDays = 14
)

// DateFormat calendar date format used across the API
const DateFormat = "2006-01-02"
