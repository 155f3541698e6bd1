package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/session"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestSessionRepository_ReturnsCopies(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	s := &domain.Session{ID: "s1", Date: day(10), StartTime: "10:00", Participants: []domain.Participant{{Email: "a@x.io"}}}
	_, err := repo.Create(ctx, s)
	require.NoError(t, err)

	s.Participants[0].Email = "mutated"

	got, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", got.Participants[0].Email)

	got.Participants = nil
	again, _ := repo.GetByID(ctx, "s1")
	assert.Len(t, again.Participants, 1)
}

func TestSessionRepository_ListOrderAndDateFilter(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	for _, s := range []*domain.Session{
		{ID: "late", Date: day(10), StartTime: "18:00"},
		{ID: "tomorrow", Date: day(11), StartTime: "08:00"},
		{ID: "early", Date: day(10), StartTime: "09:00"},
	} {
		_, err := repo.Create(ctx, s)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late", "tomorrow"}, ids(all))

	onDay, err := repo.ListByDate(ctx, day(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late"}, ids(onDay))
}

func TestSessionRepository_UpdateAndDeleteMissing(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	assert.ErrorIs(t, repo.Update(ctx, &domain.Session{ID: "nope"}), sessionRepo.ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nope"), sessionRepo.ErrSessionNotFound)

	_, err := repo.Create(ctx, &domain.Session{ID: "s1", Date: day(10), StartTime: "10:00"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "s1"))

	_, err = repo.GetByID(ctx, "s1")
	assert.ErrorIs(t, err, sessionRepo.ErrSessionNotFound)
}

func ids(sessions []*domain.Session) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.ID
	}
	return out
}
