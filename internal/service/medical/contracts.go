package medical

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// RecordRepository интерфейс хранилища медицинских анкет
type RecordRepository interface {
	Create(ctx context.Context, record *domain.MedicalRecord) error
	GetByID(ctx context.Context, id string) (*domain.MedicalRecord, error)
	GetByParticipantID(ctx context.Context, participantID string) ([]*domain.MedicalRecord, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
