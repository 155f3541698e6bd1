package remove_from_waitlist

import "context"

type WaitlistService interface {
	RemoveFromWaitlist(ctx context.Context, sessionID, email string) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
