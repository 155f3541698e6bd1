package equipment_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

type failingRepo struct{}

func (failingRepo) ListByDate(context.Context, time.Time) ([]*domain.Session, error) {
	return nil, errors.New("connection reset")
}

func seed(t *testing.T, repo *memory.SessionRepository, id, date, start string, status domain.SessionStatus, bookings domain.EquipmentBookings) {
	t.Helper()

	d, err := domain.ParseDate(date, time.UTC)
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), &domain.Session{
		ID:                id,
		Name:              "Reformer",
		Trainer:           "Anna",
		Room:              "Room 1",
		Date:              d,
		StartTime:         types.TimeString(start),
		DurationMinutes:   60,
		MaxSpots:          4,
		Status:            status,
		EquipmentBookings: bookings,
	})
	require.NoError(t, err)
}

func newTestUseCase(t *testing.T) (*UseCase, *memory.SessionRepository) {
	t.Helper()
	repo := memory.NewSessionRepository()
	return NewUseCase(repo, time.UTC, logger.Nop()), repo
}

func TestIsAvailable_OffsetSessionsOverlap(t *testing.T) {
	uc, repo := newTestUseCase(t)
	seed(t, repo, "s1", "2025-03-10", "10:00", domain.StatusOpen, domain.EquipmentBookings{
		domain.EquipmentLaser: {{StartMinute: 0, EndMinute: 15}},
	})

	tests := []struct {
		name      string
		req       AvailabilityRequest
		available bool
	}{
		{
			name:      "10:05 first window overlaps 10:00-10:15",
			req:       AvailabilityRequest{Equipment: "laser", Date: "2025-03-10", StartTime: "10:05", StartMinute: 0, EndMinute: 15},
			available: false,
		},
		{
			name:      "10:05 last window is free",
			req:       AvailabilityRequest{Equipment: "laser", Date: "2025-03-10", StartTime: "10:05", StartMinute: 45, EndMinute: 60},
			available: true,
		},
		{
			name:      "touching window is free",
			req:       AvailabilityRequest{Equipment: "laser", Date: "2025-03-10", StartTime: "09:45", StartMinute: 0, EndMinute: 15},
			available: true,
		},
		{
			name:      "other equipment type is free",
			req:       AvailabilityRequest{Equipment: "reformer", Date: "2025-03-10", StartTime: "10:05", StartMinute: 0, EndMinute: 15},
			available: true,
		},
		{
			name:      "other date is free",
			req:       AvailabilityRequest{Equipment: "laser", Date: "2025-03-11", StartTime: "10:00", StartMinute: 0, EndMinute: 15},
			available: true,
		},
		{
			name:      "own session is excluded",
			req:       AvailabilityRequest{Equipment: "laser", Date: "2025-03-10", StartTime: "10:00", StartMinute: 0, EndMinute: 15, ExcludeSessionID: "s1"},
			available: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			resp, err := uc.IsAvailable(context.Background(), &req)
			require.NoError(t, err)
			assert.Equal(t, tt.available, resp.Available)
		})
	}
}

func TestIsAvailable_IgnoresCancelledSessions(t *testing.T) {
	uc, repo := newTestUseCase(t)
	seed(t, repo, "s1", "2025-03-10", "10:00", domain.StatusCancelled, domain.EquipmentBookings{
		domain.EquipmentChair: {{StartMinute: 0, EndMinute: 15}},
	})

	resp, err := uc.IsAvailable(context.Background(), &AvailabilityRequest{
		Equipment: "chair", Date: "2025-03-10", StartTime: "10:00", StartMinute: 0, EndMinute: 15,
	})
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestIsAvailable_InvalidInput(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.IsAvailable(context.Background(), &AvailabilityRequest{
		Equipment: "laser", Date: "2025-03-10", StartTime: "10:00", StartMinute: 5, EndMinute: 20,
	})
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, err = uc.IsAvailable(context.Background(), &AvailabilityRequest{
		Equipment: "trampoline", Date: "2025-03-10", StartTime: "10:00", StartMinute: 0, EndMinute: 15,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.IsAvailable(context.Background(), &AvailabilityRequest{
		Equipment: "laser", Date: "2025-03-10", StartTime: "10h", StartMinute: 0, EndMinute: 15,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIsAvailable_RepositoryFailure(t *testing.T) {
	uc := NewUseCase(failingRepo{}, time.UTC, logger.Nop())

	_, err := uc.IsAvailable(context.Background(), &AvailabilityRequest{
		Equipment: "laser", Date: "2025-03-10", StartTime: "10:00", StartMinute: 0, EndMinute: 15,
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestOfferableSlots(t *testing.T) {
	uc, repo := newTestUseCase(t)
	seed(t, repo, "s1", "2025-03-10", "10:00", domain.StatusOpen, domain.EquipmentBookings{
		domain.EquipmentLaser:    {{StartMinute: 0, EndMinute: 15}},
		domain.EquipmentReformer: {{StartMinute: 30, EndMinute: 45}},
	})

	resp, err := uc.OfferableSlots(context.Background(), &OfferableRequest{
		Date: "2025-03-10", StartTime: "10:05", DurationMinutes: 45,
	})
	require.NoError(t, err)
	require.Len(t, resp.Equipment, len(domain.EquipmentTypes))

	byType := make(map[string][]Slot, len(resp.Equipment))
	for _, e := range resp.Equipment {
		byType[e.Equipment] = e.Slots
	}

	// [45,60) не помещается в 45 минут
	assert.Equal(t, []Slot{{StartMinute: 15, EndMinute: 30}, {StartMinute: 30, EndMinute: 45}}, byType["laser"])
	// 10:35-10:50 и 10:20-10:35 пересекаются с 10:30-10:45
	assert.Equal(t, []Slot{{StartMinute: 0, EndMinute: 15}}, byType["reformer"])
	assert.Len(t, byType["barrel"], 3)
	assert.Equal(t, string(domain.EquipmentTypes[0]), resp.Equipment[0].Equipment)
}

func TestOfferableSlots_InvalidDuration(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.OfferableSlots(context.Background(), &OfferableRequest{
		Date: "2025-03-10", StartTime: "10:00", DurationMinutes: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
