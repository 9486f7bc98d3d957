package stream_notifications

import (
	"github.com/motozapp/MotoZapp-BookingService/internal/infra/feed"
)

type FeedHub interface {
	Register(client *feed.Client)
	Unregister(client *feed.Client)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
