package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	equipmentAvailability "github.com/m04kA/SMC-StudioService/internal/usecase/equipment_availability"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
)

type stubUseCase struct {
	result *equipmentAvailability.OfferableResponse
	err    error

	gotReq *equipmentAvailability.OfferableRequest
}

func (u *stubUseCase) OfferableSlots(_ context.Context, req *equipmentAvailability.OfferableRequest) (*equipmentAvailability.OfferableResponse, error) {
	u.gotReq = req
	return u.result, u.err
}

func serve(t *testing.T, uc OfferableSlotsUseCase, query string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/equipment/slots?"+query, nil)
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_ReturnsSlotsPerEquipment(t *testing.T) {
	uc := &stubUseCase{result: &equipmentAvailability.OfferableResponse{
		Date:            "2025-03-10",
		StartTime:       "10:00",
		DurationMinutes: 30,
		Equipment: []equipmentAvailability.EquipmentSlots{
			{Equipment: "laser", Slots: []equipmentAvailability.Slot{{StartMinute: 15, EndMinute: 30}}},
			{Equipment: "reformer", Slots: []equipmentAvailability.Slot{}},
		},
	}}

	rec := serve(t, uc, "date=2025-03-10&startTime=10:00&durationMinutes=30&excludeSessionId=s-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, &equipmentAvailability.OfferableRequest{
		Date:             "2025-03-10",
		StartTime:        "10:00",
		DurationMinutes:  30,
		ExcludeSessionID: "s-1",
	}, uc.gotReq)

	var got AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []AvailableSlot{{StartMinute: 15, EndMinute: 30}}, got.Equipment["laser"])
	assert.Empty(t, got.Equipment["reformer"])
	assert.Equal(t, 30, got.DurationMinutes)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{name: "missing duration", query: "date=2025-03-10&startTime=10:00", status: http.StatusBadRequest},
		{name: "non-numeric duration", query: "date=2025-03-10&startTime=10:00&durationMinutes=half", status: http.StatusBadRequest},
		{name: "invalid input", query: "date=10.03.2025&startTime=10:00&durationMinutes=60",
			err: fmt.Errorf("%w: date", equipmentAvailability.ErrInvalidInput), status: http.StatusBadRequest},
		{name: "internal", query: "date=2025-03-10&startTime=10:00&durationMinutes=60",
			err: equipmentAvailability.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubUseCase{err: tt.err}, tt.query)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
