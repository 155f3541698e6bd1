package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	List(ctx context.Context) ([]*domain.Session, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Session, error)
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker блокировка по ключу (локальная или распределённая)
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// EventPublisher публикатор доменных событий
type EventPublisher interface {
	ParticipantChanged(subject, sessionID string, participant domain.Participant)
	SlotsDropped(sessionID string, dropped []domain.DroppedSlot)
	StatusChanged(sessionID string, from, to domain.SessionStatus)
}

// MetricsRecorder учёт исходов записи
type MetricsRecorder interface {
	ObserveBooking(outcome string)
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

// NoopMetrics используется, когда метрики выключены
type NoopMetrics struct{}

func (NoopMetrics) ObserveBooking(string) {}
