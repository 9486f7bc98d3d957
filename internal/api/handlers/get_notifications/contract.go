package get_notifications

import (
	"context"

	"github.com/motozapp/MotoZapp-BookingService/internal/service/notifications/models"
)

type NotificationService interface {
	List(ctx context.Context, userID int64, filter string) (*models.FeedResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
