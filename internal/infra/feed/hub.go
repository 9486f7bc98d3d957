package feed

import (
	"encoding/json"
	"sync"

	"github.com/motozapp/MotoZapp-BookingService/pkg/metrics"
)

// Client подписчик ленты уведомлений
// Send закрывается хабом при Unregister, после этого писать в него нельзя
type Client struct {
	ID     string
	UserID int64
	Send   chan []byte
}

// Hub реестр подписчиков realtime-ленты
// События доставляются только подписчикам-владельцам затронутой строки
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	serviceName string
	metrics     *metrics.Metrics
	logger      Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewHub создает новый экземпляр хаба
func NewHub(serviceName string, m *metrics.Metrics, logger Logger) *Hub {
	return &Hub{
		clients:     make(map[string]*Client),
		serviceName: serviceName,
		metrics:     m,
		logger:      logger,
	}
}

// Register добавляет подписчика в реестр
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client

	if h.metrics != nil {
		h.metrics.FeedClientsConnected.WithLabelValues(h.serviceName).Set(float64(len(h.clients)))
	}
}

// Unregister удаляет подписчика и закрывает его канал
// Повторный вызов безопасен
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)

	if h.metrics != nil {
		h.metrics.FeedClientsConnected.WithLabelValues(h.serviceName).Set(float64(len(h.clients)))
	}
}

// Broadcast доставляет событие подписчикам владельца строки
// Отправка неблокирующая: медленный подписчик теряет событие, а не тормозит остальных
func (h *Hub) Broadcast(event *Event) {
	userID, ok := event.UserID()
	if !ok {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Hub: failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.Send <- payload:
			h.observe("delivered")
		default:
			h.logger.Warn("Hub: dropping event for slow client %s", client.ID)
			h.observe("dropped")
		}
	}
}

// ClientCount возвращает число подключенных подписчиков
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) observe(result string) {
	if h.metrics == nil {
		return
	}
	h.metrics.FeedEventsTotal.WithLabelValues(h.serviceName, result).Inc()
}
