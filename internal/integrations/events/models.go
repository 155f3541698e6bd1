package events

import "time"

// Subjects доменных событий
const (
	SubjectSessionBooked        = "session.booked"
	SubjectSessionWaitlisted    = "session.waitlisted"
	SubjectWaitlistPromoted     = "waitlist.promoted"
	SubjectBookingCancelled     = "booking.cancelled"
	SubjectWaitlistRemoved      = "waitlist.removed"
	SubjectEquipmentSlotDropped = "equipment.slots_dropped"
	SubjectSessionStatusChanged = "session.status_changed"
)

// ParticipantEvent запись, отмена или продвижение участника
type ParticipantEvent struct {
	EventType     string    `json:"event_type"`
	SessionID     string    `json:"session_id"`
	ParticipantID string    `json:"participant_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// DroppedSlot снятое окно оборудования
type DroppedSlot struct {
	Equipment   string `json:"equipment"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
	Reason      string `json:"reason"`
}

// SlotsDroppedEvent окна оборудования, снятые после переноса сессии
type SlotsDroppedEvent struct {
	EventType  string        `json:"event_type"`
	SessionID  string        `json:"session_id"`
	Slots      []DroppedSlot `json:"slots"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// StatusChangedEvent смена статуса сессии
type StatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	SessionID  string    `json:"session_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}
