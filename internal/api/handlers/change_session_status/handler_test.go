package change_session_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioService/internal/service/sessions"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
)

type stubService struct {
	changed bool
	err     error

	gotSessionID string
	gotStatus    string
}

func (s *stubService) ChangeSessionStatus(_ context.Context, id string, status string) (bool, error) {
	s.gotSessionID = id
	s.gotStatus = status
	return s.changed, s.err
}

func serve(t *testing.T, svc SessionService, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := mux.NewRouter()
	r.HandleFunc("/sessions/{sessionId}/status", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/sessions/s-1/status", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Changed(t *testing.T) {
	svc := &stubService{changed: true}

	rec := serve(t, svc, `{"status":"on going"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s-1", svc.gotSessionID)
	assert.Equal(t, "on going", svc.gotStatus)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestHandle_TerminalSessionIsOK(t *testing.T) {
	rec := serve(t, &stubService{changed: false}, `{"status":"open"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":false}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "broken body", body: `{"status":`, status: http.StatusBadRequest},
		{name: "missing status", body: `{}`, status: http.StatusBadRequest},
		{name: "unknown status", body: `{"status":"bogus"}`, err: fmt.Errorf("%w: bogus", sessions.ErrInvalidInput), status: http.StatusBadRequest},
		{name: "session not found", body: `{"status":"open"}`, err: sessions.ErrSessionNotFound, status: http.StatusNotFound},
		{name: "internal", body: `{"status":"open"}`, err: sessions.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubService{err: tt.err}, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
