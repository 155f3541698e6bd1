package domain

import (
	"encoding/json"
	"time"
)

// MedicalRecord анкета участника, привязанная к сессии
// Payload хранится как есть, схема формы сервису не известна
type MedicalRecord struct {
	ID            string
	ParticipantID string
	SessionID     string
	Payload       json.RawMessage
	CreatedAt     time.Time
}
