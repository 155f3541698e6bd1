package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
)

type message struct {
	subject string
	data    []byte
}

type fakeConn struct {
	messages []message
	err      error
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, message{subject: subject, data: data})
	return nil
}

func newPublisher(conn Conn) *Publisher {
	p := NewPublisher(conn, logger.Nop())
	p.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return p
}

func TestPublisher_ParticipantChanged(t *testing.T) {
	conn := &fakeConn{}
	p := newPublisher(conn)

	p.ParticipantChanged(SubjectWaitlistPromoted, "s1", domain.Participant{ID: "p1", Name: "Kate", Email: "kate@x.io"})

	require.Len(t, conn.messages, 1)
	assert.Equal(t, SubjectWaitlistPromoted, conn.messages[0].subject)
	assert.JSONEq(t, `{
		"event_type": "waitlist.promoted",
		"session_id": "s1",
		"participant_id": "p1",
		"email": "kate@x.io",
		"name": "Kate",
		"occurred_at": "2025-03-10T09:00:00Z"
	}`, string(conn.messages[0].data))
}

func TestPublisher_SlotsDropped(t *testing.T) {
	conn := &fakeConn{}
	p := newPublisher(conn)

	p.SlotsDropped("s1", []domain.DroppedSlot{{
		Equipment: domain.EquipmentLaser,
		Slot:      domain.EquipmentSlot{StartMinute: 45, EndMinute: 60},
		Reason:    domain.DropReasonExceedsDuration,
	}})

	require.Len(t, conn.messages, 1)
	var event SlotsDroppedEvent
	require.NoError(t, json.Unmarshal(conn.messages[0].data, &event))
	assert.Equal(t, "s1", event.SessionID)
	assert.Equal(t, []DroppedSlot{{Equipment: "laser", StartMinute: 45, EndMinute: 60, Reason: "exceeds_duration"}}, event.Slots)
}

func TestPublisher_PublishErrorIsSwallowed(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	p := newPublisher(conn)

	assert.NotPanics(t, func() {
		p.StatusChanged("s1", domain.StatusOpen, domain.StatusCancelled)
	})
	assert.Empty(t, conn.messages)
}
