package feed

import (
	"encoding/json"
	"fmt"
	"time"
)

// Типы событий change-feed, которые эмитит триггер на таблице notifications
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// NotificationRow строка таблицы notifications в payload события
type NotificationRow struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Event событие change-feed из Postgres NOTIFY
// Old заполняется только для UPDATE и DELETE
type Event struct {
	EventType string           `json:"eventType"`
	New       *NotificationRow `json:"new,omitempty"`
	Old       *NotificationRow `json:"old,omitempty"`
}

// UserID возвращает владельца затронутой строки
func (e *Event) UserID() (int64, bool) {
	switch {
	case e.New != nil:
		return e.New.UserID, true
	case e.Old != nil:
		return e.Old.UserID, true
	default:
		return 0, false
	}
}

// ParseEvent разбирает JSON payload NOTIFY в событие
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	switch event.EventType {
	case EventInsert, EventUpdate, EventDelete:
	default:
		return nil, fmt.Errorf("%w: unexpected event type %q", ErrMalformedPayload, event.EventType)
	}

	if event.New == nil && event.Old == nil {
		return nil, fmt.Errorf("%w: event without row payload", ErrMalformedPayload)
	}

	return &event, nil
}
