package feed

import (
	"context"
	"time"

	"github.com/lib/pq"
)

const (
	minReconnectInterval = time.Second
	maxReconnectInterval = 30 * time.Second
	pingInterval         = 90 * time.Second
)

// Listener слушает канал Postgres NOTIFY и передает события хабу
// Переподключение при обрыве делает pq.Listener, пропущенные за время
// обрыва события не восполняются: лента доезжает при следующем запросе списка
type Listener struct {
	dsn     string
	channel string
	hub     *Hub
	logger  Logger
}

// NewListener создает новый экземпляр слушателя change-feed
func NewListener(dsn, channel string, hub *Hub, logger Logger) *Listener {
	return &Listener{
		dsn:     dsn,
		channel: channel,
		hub:     hub,
		logger:  logger,
	}
}

// Run блокирующе слушает канал до отмены контекста
func (l *Listener) Run(ctx context.Context) error {
	pqListener := pq.NewListener(l.dsn, minReconnectInterval, maxReconnectInterval, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			l.logger.Warn("Listener: connection event %d: %v", ev, err)
		}
	})
	defer pqListener.Close()

	if err := pqListener.Listen(l.channel); err != nil {
		return err
	}

	l.logger.Info("Listener: listening on channel %q", l.channel)

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Listener: stopping, context cancelled")
			return ctx.Err()

		case notification := <-pqListener.Notify:
			// nil приходит после переподключения
			if notification == nil {
				continue
			}
			l.dispatch([]byte(notification.Extra))

		case <-time.After(pingInterval):
			if err := pqListener.Ping(); err != nil {
				l.logger.Warn("Listener: ping failed: %v", err)
			}
		}
	}
}

func (l *Listener) dispatch(payload []byte) {
	event, err := ParseEvent(payload)
	if err != nil {
		l.logger.Warn("Listener: skipping event: %v", err)
		l.hub.observe("malformed")
		return
	}

	l.hub.Broadcast(event)
}
