package create_booking

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

type BookingService interface {
	BookSession(ctx context.Context, sessionID string, req *models.ParticipantRequest) (*models.BookResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
