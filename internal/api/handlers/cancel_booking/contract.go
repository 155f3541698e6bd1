package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/sessions/models"
)

type BookingService interface {
	CancelBooking(ctx context.Context, sessionID, email string) (*models.CancelResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
