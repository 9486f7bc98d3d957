package stream_notifications

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/motozapp/MotoZapp-BookingService/internal/api/handlers"
	"github.com/motozapp/MotoZapp-BookingService/internal/api/middleware"
	"github.com/motozapp/MotoZapp-BookingService/internal/infra/feed"
)

const (
	msgMissingActorID = "требуется аутентификация"

	writeTimeout  = 10 * time.Second
	pingPeriod    = 30 * time.Second
	sendQueueSize = 16
)

type Handler struct {
	hub      FeedHub
	upgrader websocket.Upgrader
	logger   Logger
}

func NewHandler(hub FeedHub, logger Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// Handle GET /api/v1/notifications/stream
//
// Держит websocket до закрытия клиентом; события change-feed по
// уведомлениям актора доставляются в момент изменения строки.
// При закрытии соединения подписчик снимается с учета в хабе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.ActorID(r.Context())
	if !ok {
		h.logger.Warn("GET /notifications/stream - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("GET /notifications/stream - Upgrade failed: user_id=%d, error=%v", userID, err)
		return
	}

	client := &feed.Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Send:   make(chan []byte, sendQueueSize),
	}

	h.hub.Register(client)
	h.logger.Info("GET /notifications/stream - Subscriber connected: client=%s, user_id=%d", client.ID, userID)

	go h.writePump(conn, client)
	h.readPump(conn, client)
}

// writePump пишет события и пинги в соединение
// Завершается при закрытии client.Send хабом или ошибке записи
func (h *Handler) writePump(conn *websocket.Conn, client *feed.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload, ok := <-client.Send:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeTimeout))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.logger.Warn("stream: write failed for client=%s: %v", client.ID, err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump читает соединение до закрытия клиентом
// Входящие сообщения игнорируются - канал односторонний
func (h *Handler) readPump(conn *websocket.Conn, client *feed.Client) {
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
		h.logger.Info("stream: subscriber disconnected: client=%s, user_id=%d", client.ID, client.UserID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
