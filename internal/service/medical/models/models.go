package models

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// CreateRecordRequest запрос на сохранение анкеты
type CreateRecordRequest struct {
	ParticipantID string          `json:"participantId" validate:"required,max=255"`
	SessionID     string          `json:"sessionId" validate:"required,max=255"`
	Payload       json.RawMessage `json:"payload" validate:"required"`
}

// RecordResponse анкета участника
type RecordResponse struct {
	ID            string          `json:"id"`
	ParticipantID string          `json:"participantId"`
	SessionID     string          `json:"sessionId"`
	Payload       json.RawMessage `json:"payload"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// FromDomainRecord конвертирует анкету
func FromDomainRecord(r *domain.MedicalRecord) *RecordResponse {
	return &RecordResponse{
		ID:            r.ID,
		ParticipantID: r.ParticipantID,
		SessionID:     r.SessionID,
		Payload:       r.Payload,
		CreatedAt:     r.CreatedAt,
	}
}

// FromDomainRecordList конвертирует список анкет
func FromDomainRecordList(records []*domain.MedicalRecord) []*RecordResponse {
	out := make([]*RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromDomainRecord(r))
	}
	return out
}
