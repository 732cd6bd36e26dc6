package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DonorService/pkg/types"
)

func TestNextDueDate_NoHistory(t *testing.T) {
	now := time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC)

	due := NextDueDate(SexMale, nil, now)

	assert.Equal(t, "2024-03-15", due.String(), "donor with no history is due immediately")
}

func TestNextDueDate_BySex(t *testing.T) {
	last, err := types.NewDateFromString("2024-01-10")
	require.NoError(t, err)

	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		sex  Sex
		want string
	}{
		{name: "male waits three months", sex: SexMale, want: "2024-04-10"},
		{name: "female waits six months", sex: SexFemale, want: "2024-07-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := NextDueDate(tt.sex, &last, now)
			assert.Equal(t, tt.want, due.String())
		})
	}
}

func TestNextDueDate_MonthEndNormalization(t *testing.T) {
	// 2024-11-30 + 3 months lands on the nonexistent Feb 30 and
	// normalizes forward, same as time.Time.AddDate
	last, err := types.NewDateFromString("2024-11-30")
	require.NoError(t, err)

	due := NextDueDate(SexMale, &last, time.Now())

	assert.Equal(t, "2025-03-02", due.String())
}

func TestDonor_DonationIntervalMonths(t *testing.T) {
	male := &Donor{Sex: SexMale}
	female := &Donor{Sex: SexFemale}

	assert.Equal(t, MaleIntervalMonths, male.DonationIntervalMonths())
	assert.Equal(t, FemaleIntervalMonths, female.DonationIntervalMonths())
}

func TestDonor_CanBeScheduled(t *testing.T) {
	tests := []struct {
		name      string
		active    bool
		suspended bool
		want      bool
	}{
		{name: "active and not suspended", active: true, suspended: false, want: true},
		{name: "inactive", active: false, suspended: false, want: false},
		{name: "suspended", active: true, suspended: true, want: false},
		{name: "inactive and suspended", active: false, suspended: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Donor{IsActive: tt.active, IsSuspended: tt.suspended}
			assert.Equal(t, tt.want, d.CanBeScheduled())
		})
	}
}

func TestSex_IsValid(t *testing.T) {
	assert.True(t, SexMale.IsValid())
	assert.True(t, SexFemale.IsValid())
	assert.False(t, Sex("X").IsValid())
	assert.False(t, Sex("").IsValid())
}
