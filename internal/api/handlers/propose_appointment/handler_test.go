package propose_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	proposeAppointment "github.com/m04kA/SMC-DonorService/internal/usecase/propose_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	resp *proposeAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *proposeAppointment.Request) (*proposeAppointment.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

const proposeBody = `{"donorId":7,"dates":["2024-06-03","2024-06-05","2024-06-07"]}`

func doRequest(uc *fakeUseCase) *httptest.ResponseRecorder {
	h := NewHandler(uc, nopLogger{})

	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/appointments/propose",
		strings.NewReader(proposeBody))
	w := httptest.NewRecorder()
	h.Handle(w, r)

	return w
}

func TestHandle_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid input", err: proposeAppointment.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "unbookable date is a client error", err: proposeAppointment.ErrDateNotBookable, want: http.StatusBadRequest},
		{name: "donor not found", err: proposeAppointment.ErrDonorNotFound, want: http.StatusNotFound},
		{name: "donor not schedulable", err: proposeAppointment.ErrDonorNotSchedulable, want: http.StatusUnprocessableEntity},
		{name: "pending exists is the only conflict", err: proposeAppointment.ErrPendingExists, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(&fakeUseCase{err: tt.err})
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandle_Created(t *testing.T) {
	w := doRequest(&fakeUseCase{
		resp: &proposeAppointment.Response{ID: 201, DonorID: 7, Status: "pending"},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":201`)
}
