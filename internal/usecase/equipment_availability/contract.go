package equipment_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	// ListByDate получает все сессии на календарную дату
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
