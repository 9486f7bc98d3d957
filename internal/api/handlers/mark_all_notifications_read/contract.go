package mark_all_notifications_read

import "context"

type NotificationService interface {
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
