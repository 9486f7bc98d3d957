package feed

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestHub() *Hub {
	return NewHub("test", nil, nopLogger{})
}

func insertEvent(userID int64) *Event {
	return &Event{
		EventType: EventInsert,
		New: &NotificationRow{
			ID:        "11111111-1111-1111-1111-111111111111",
			UserID:    userID,
			Title:     "Booking Confirmed",
			Type:      "service",
			CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestHub_BroadcastToOwnerOnly(t *testing.T) {
	hub := newTestHub()

	owner := &Client{ID: "a", UserID: 1, Send: make(chan []byte, 1)}
	other := &Client{ID: "b", UserID: 2, Send: make(chan []byte, 1)}
	hub.Register(owner)
	hub.Register(other)

	hub.Broadcast(insertEvent(1))

	require.Len(t, owner.Send, 1)
	assert.Empty(t, other.Send)

	var got Event
	require.NoError(t, json.Unmarshal(<-owner.Send, &got))
	assert.Equal(t, EventInsert, got.EventType)
	assert.Equal(t, int64(1), got.New.UserID)
}

func TestHub_SlowClientDropsEvent(t *testing.T) {
	hub := newTestHub()

	client := &Client{ID: "a", UserID: 1, Send: make(chan []byte, 1)}
	hub.Register(client)

	hub.Broadcast(insertEvent(1))
	hub.Broadcast(insertEvent(1)) // буфер полон, событие теряется

	assert.Len(t, client.Send, 1)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := newTestHub()

	client := &Client{ID: "a", UserID: 1, Send: make(chan []byte, 1)}
	hub.Register(client)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount())

	_, open := <-client.Send
	assert.False(t, open)

	// Повторный Unregister не паникует на закрытом канале
	hub.Unregister(client)
}

func TestParseEvent(t *testing.T) {
	payload := []byte(`{"eventType":"UPDATE","new":{"id":"n1","user_id":7,"read":true,"created_at":"2025-06-01T10:00:00Z"},"old":{"id":"n1","user_id":7,"read":false,"created_at":"2025-06-01T10:00:00Z"}}`)

	event, err := ParseEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, EventUpdate, event.EventType)
	assert.True(t, event.New.Read)
	assert.False(t, event.Old.Read)

	userID, ok := event.UserID()
	require.True(t, ok)
	assert.Equal(t, int64(7), userID)
}

func TestParseEvent_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", "not-json"},
		{"unknown type", `{"eventType":"TRUNCATE","new":{"id":"n1"}}`},
		{"no rows", `{"eventType":"INSERT"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseEvent([]byte(tc.payload))
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestEvent_UserIDFromOldRow(t *testing.T) {
	event := &Event{
		EventType: EventDelete,
		Old:       &NotificationRow{ID: "n1", UserID: 3},
	}

	userID, ok := event.UserID()
	require.True(t, ok)
	assert.Equal(t, int64(3), userID)
}
