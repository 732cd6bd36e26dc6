package reject_registration_request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DonorService/internal/api/middleware"
	registrationModels "github.com/m04kA/SMC-DonorService/internal/service/registrations/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeService struct {
	rejectedNote string
}

func (f *fakeService) Reject(ctx context.Context, id int64, adminID int64, req *registrationModels.RejectRequest) (*registrationModels.RegistrationRequestResponse, error) {
	f.rejectedNote = req.Note
	return &registrationModels.RegistrationRequestResponse{ID: id, Status: "rejected"}, nil
}

func doRequest(t *testing.T, svc *fakeService, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(svc, nopLogger{})

	router := mux.NewRouter()
	router.Handle("/api/v1/admin/registration-requests/{requestId}/reject",
		middleware.Auth(http.HandlerFunc(h.Handle))).Methods(http.MethodPost)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/registration-requests/301/reject",
		strings.NewReader(body))
	r.Header.Set(middleware.HeaderUserID, "42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	return w
}

func TestHandle_EmptyBodyAllowed(t *testing.T) {
	svc := &fakeService{}

	w := doRequest(t, svc, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.rejectedNote)
}

func TestHandle_NoteIsPassedThrough(t *testing.T) {
	svc := &fakeService{}

	w := doRequest(t, svc, `{"note":"анкета не заполнена"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "анкета не заполнена", svc.rejectedNote)
}

func TestHandle_MalformedBodyRejected(t *testing.T) {
	svc := &fakeService{}

	w := doRequest(t, svc, `{"note":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
