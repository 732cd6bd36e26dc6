package domain

import (
	"time"

	"github.com/m04kA/SMC-DonorService/pkg/types"
)

// NextDueDate computes the earliest date a donor may donate again.
// A donor with no donation history is immediately eligible.
// The interval is fixed by sex: 3 months for male donors, 6 for female.
// Pure and total; callers cache the result on the donor record and must
// recompute it whenever the donation history changes.
func NextDueDate(sex Sex, lastDonation *types.Date, now time.Time) types.Date {
	if lastDonation == nil {
		return types.NewDate(now)
	}

	months := FemaleIntervalMonths
	if sex == SexMale {
		months = MaleIntervalMonths
	}

	return lastDonation.AddMonths(months)
}
