package change_session_status

import "context"

type SessionService interface {
	ChangeSessionStatus(ctx context.Context, id string, status string) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
