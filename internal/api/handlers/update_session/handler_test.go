package update_session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/service/sessions"
	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
)

type stubService struct {
	result *models.EditResult
	err    error
	gotReq *models.UpdateSessionRequest
}

func (s *stubService) UpdateSession(_ context.Context, _ string, req *models.UpdateSessionRequest) (*models.EditResult, error) {
	s.gotReq = req
	return s.result, s.err
}

func serve(svc SessionService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/sessions/{sessionId}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/sessions/s-1", strings.NewReader(body)))
	return rec
}

func TestHandle_DragAndDrop(t *testing.T) {
	svc := &stubService{result: &models.EditResult{
		Session:      &models.SessionResponse{ID: "s-1", Room: "Room 2", StartTime: "12:00"},
		DroppedSlots: []models.DroppedSlotResponse{{Equipment: "laser", StartMinute: 0, EndMinute: 15, Reason: "unavailable"}},
	}}

	rec := serve(svc, `{"room":"Room 2","date":"2025-03-11","startTime":"12:00"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "Room 2", *svc.gotReq.Room)
	assert.Nil(t, svc.gotReq.MaxSpots)
	assert.Contains(t, rec.Body.String(), `"droppedSlots":[{"equipment":"laser"`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: sessions.ErrSessionNotFound, status: http.StatusNotFound},
		{err: fmt.Errorf("%w: bad", sessions.ErrInvalidInput), status: http.StatusBadRequest},
		{err: fmt.Errorf("%w: maxSpots=1", sessions.ErrCapacityViolation), status: http.StatusConflict},
		{err: sessions.ErrWaitlistViolation, status: http.StatusConflict},
		{err: sessions.ErrEquipmentConflict, status: http.StatusConflict},
		{err: sessions.ErrRoomConflict, status: http.StatusConflict},
		{err: sessions.ErrStatusTransition, status: http.StatusConflict},
		{err: sessions.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, `{"maxSpots":1}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_RejectsNonPositiveCapacity(t *testing.T) {
	svc := &stubService{}

	rec := serve(svc, `{"maxSpots":0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.gotReq)
}
