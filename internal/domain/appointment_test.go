package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DonorService/pkg/types"
)

func mustDate(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.NewDateFromString(s)
	require.NoError(t, err)
	return d
}

func TestAppointment_Transitions(t *testing.T) {
	tests := []struct {
		status       AppointmentStatus
		terminal     bool
		cancellable  bool
		overridable  bool
	}{
		{status: StatusPending, terminal: false, cancellable: true, overridable: true},
		{status: StatusConfirmed, terminal: false, cancellable: true, overridable: true},
		{status: StatusCompleted, terminal: true, cancellable: false, overridable: false},
		{status: StatusCancelled, terminal: true, cancellable: false, overridable: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Appointment{Status: tt.status}
			assert.Equal(t, tt.terminal, a.IsTerminal())
			assert.Equal(t, tt.cancellable, a.CanBeCancelled())
			assert.Equal(t, tt.overridable, a.CanBeOverridden())
		})
	}
}

func TestAppointment_IsProposedDate(t *testing.T) {
	a := &Appointment{
		ProposedDate1: mustDate(t, "2024-06-03"),
		ProposedDate2: mustDate(t, "2024-06-05"),
		ProposedDate3: mustDate(t, "2024-06-07"),
	}

	assert.True(t, a.IsProposedDate(mustDate(t, "2024-06-03")))
	assert.True(t, a.IsProposedDate(mustDate(t, "2024-06-05")))
	assert.True(t, a.IsProposedDate(mustDate(t, "2024-06-07")))
	assert.False(t, a.IsProposedDate(mustDate(t, "2024-06-04")))
}
