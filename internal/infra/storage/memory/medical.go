package memory

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	medicalRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/medical"
)

// MedicalRepository in-memory реализация репозитория анкет
type MedicalRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.MedicalRecord
	order   []string
}

func NewMedicalRepository() *MedicalRepository {
	return &MedicalRepository{records: make(map[string]*domain.MedicalRecord)}
}

func (r *MedicalRepository) Create(_ context.Context, record *domain.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.ID] = cloneRecord(record)
	r.order = append(r.order, record.ID)
	return nil
}

func (r *MedicalRepository) GetByID(_ context.Context, id string) (*domain.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, medicalRepo.ErrRecordNotFound
	}
	return cloneRecord(record), nil
}

// GetByParticipantID возвращает анкеты участника в порядке создания
func (r *MedicalRepository) GetByParticipantID(_ context.Context, participantID string) ([]*domain.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.MedicalRecord, 0)
	for _, id := range r.order {
		if record := r.records[id]; record.ParticipantID == participantID {
			out = append(out, cloneRecord(record))
		}
	}
	return out, nil
}

func cloneRecord(record *domain.MedicalRecord) *domain.MedicalRecord {
	c := *record
	c.Payload = append([]byte(nil), record.Payload...)
	return &c
}
