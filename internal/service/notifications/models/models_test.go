package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestRelativeTime(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"just now", 0, "Just now"},
		{"under a minute", 59 * time.Second, "Just now"},
		{"minutes", 5 * time.Minute, "5m ago"},
		{"last minute bucket", 59 * time.Minute, "59m ago"},
		{"hours", 3 * time.Hour, "3h ago"},
		{"last hour bucket", 23*time.Hour + 59*time.Minute, "23h ago"},
		{"one day", 24 * time.Hour, "1d ago"},
		{"days", 72 * time.Hour, "3d ago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RelativeTime(now.Add(-tc.elapsed), now))
		})
	}
}

func TestBuildFeed_GroupingBoundary(t *testing.T) {
	notifications := []*domain.Notification{
		{ID: "boundary", UserID: 1, Type: domain.NotificationService, CreatedAt: now.Add(-domain.RecencyWindow)},
		{ID: "past", UserID: 1, Type: domain.NotificationService, CreatedAt: now.Add(-domain.RecencyWindow - time.Second)},
	}

	feed := BuildFeed(notifications, 2, now)

	// Ровно на границе окна уведомление еще "New", секундой старше - уже нет
	assert.Len(t, feed.New, 1)
	assert.Equal(t, "boundary", feed.New[0].ID)
	assert.Len(t, feed.Earlier, 1)
	assert.Equal(t, "past", feed.Earlier[0].ID)
}

func TestBuildFeed_EmptyInput(t *testing.T) {
	feed := BuildFeed(nil, 0, now)

	assert.NotNil(t, feed.New)
	assert.NotNil(t, feed.Earlier)
	assert.Empty(t, feed.New)
	assert.Empty(t, feed.Earlier)
}

func TestToDomainNotificationType(t *testing.T) {
	assert.Equal(t, domain.NotificationService, ToDomainNotificationType("service"))
	assert.Equal(t, domain.NotificationMechanic, ToDomainNotificationType("mechanic"))
	assert.Equal(t, domain.NotificationSystem, ToDomainNotificationType("system"))
	assert.Equal(t, domain.NotificationSystem, ToDomainNotificationType("unknown"))
}
