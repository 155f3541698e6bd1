package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessionStatus_NormalizesLegacySpellings(t *testing.T) {
	tests := map[string]SessionStatus{
		"pending":   StatusDraft,
		"on going":  StatusOngoing,
		"ongoing":   StatusOngoing,
		" Open ":    StatusOpen,
		"cancelled": StatusCancelled,
	}

	for in, want := range tests {
		got, err := ParseSessionStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSessionStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeriveStatus(t *testing.T) {
	date := mustDate(t, "2025-03-10")
	at := func(h, m int) time.Time { return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC) }

	session := func(status SessionStatus) *Session {
		return &Session{Date: date, StartTime: "10:00", DurationMinutes: 60, Status: status}
	}

	tests := []struct {
		name   string
		status SessionStatus
		now    time.Time
		want   SessionStatus
	}{
		{name: "open before start", status: StatusOpen, now: at(9, 0), want: StatusOpen},
		{name: "closed before start", status: StatusClosed, now: at(9, 59), want: StatusClosed},
		{name: "open at start", status: StatusOpen, now: at(10, 0), want: StatusOngoing},
		{name: "closed during", status: StatusClosed, now: at(10, 30), want: StatusOngoing},
		{name: "open at end", status: StatusOpen, now: at(11, 0), want: StatusFinished},
		{name: "ongoing after end", status: StatusOngoing, now: at(12, 0), want: StatusFinished},
		{name: "cancelled during", status: StatusCancelled, now: at(10, 30), want: StatusCancelled},
		{name: "cancelled after end", status: StatusCancelled, now: at(12, 0), want: StatusCancelled},
		{name: "draft during", status: StatusDraft, now: at(10, 30), want: StatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(session(tt.status), tt.now))
		})
	}
}
