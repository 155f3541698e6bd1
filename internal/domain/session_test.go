package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSession(t *testing.T) *Session {
	return &Session{
		ID:              "s1",
		Name:            "Reformer",
		Trainer:         "Anna",
		Room:            "Room 1 - Downtown",
		Date:            mustDate(t, "2025-03-10"),
		StartTime:       "10:00",
		DurationMinutes: 60,
		MaxSpots:        2,
		MaxWaitlist:     1,
		EnableWaitlist:  true,
		Status:          StatusOpen,
	}
}

func TestSession_Validate(t *testing.T) {
	s := validSession(t)
	assert.NoError(t, s.Validate())

	s.Participants = []Participant{{Email: "a@x.io"}, {Email: "b@x.io"}, {Email: "c@x.io"}}
	assert.ErrorIs(t, s.Validate(), ErrInvalidSession)

	s = validSession(t)
	s.Participants = []Participant{{Email: "a@x.io"}}
	s.Waitlist = []Participant{{Email: " A@X.io "}}
	assert.ErrorIs(t, s.Validate(), ErrInvalidSession, "cross-list duplicate")

	s = validSession(t)
	s.EnableWaitlist = false
	s.Waitlist = []Participant{{Email: "w@x.io"}}
	assert.ErrorIs(t, s.Validate(), ErrInvalidSession)

	s = validSession(t)
	s.StartTime = "10:0"
	assert.ErrorIs(t, s.Validate(), ErrInvalidTimeFormat)
}

func TestSession_ZeroMaxWaitlistHasNoPlaces(t *testing.T) {
	s := validSession(t)
	s.MaxWaitlist = 0
	assert.False(t, s.WaitlistHasRoom())

	s.Waitlist = []Participant{{Email: "w@x.io"}}
	assert.ErrorIs(t, s.Validate(), ErrInvalidSession)

	s.MaxWaitlist = 1
	assert.NoError(t, s.Validate())
	assert.False(t, s.WaitlistHasRoom())

	s.EnableWaitlist = false
	s.Waitlist = nil
	s.MaxWaitlist = 5
	assert.False(t, s.WaitlistHasRoom())
}

func TestSession_PromoteFromWaitlistIsFIFO(t *testing.T) {
	s := validSession(t)
	s.MaxWaitlist = 3
	s.Participants = []Participant{{Email: "p@x.io"}}
	s.Waitlist = []Participant{{Email: "w1@x.io"}, {Email: "w2@x.io"}, {Email: "w3@x.io"}}
	s.MaxSpots = 3

	promoted := s.PromoteFromWaitlist()

	assert.Equal(t, []string{"w1@x.io", "w2@x.io"}, []string{promoted[0].Email, promoted[1].Email})
	assert.Len(t, s.Participants, 3)
	assert.Equal(t, "w3@x.io", s.Waitlist[0].Email)
}

func TestSession_CloneIsDeep(t *testing.T) {
	s := validSession(t)
	s.Participants = []Participant{{Email: "p@x.io"}}
	s.EquipmentBookings = EquipmentBookings{EquipmentLaser: {{0, 15}}}

	c := s.Clone()
	c.Participants[0].Email = "changed"
	c.EquipmentBookings[EquipmentLaser][0] = EquipmentSlot{15, 30}

	assert.Equal(t, "p@x.io", s.Participants[0].Email)
	assert.Equal(t, EquipmentSlot{0, 15}, s.EquipmentBookings[EquipmentLaser][0])
}
