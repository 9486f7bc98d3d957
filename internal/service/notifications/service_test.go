package notifications

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	notificationRepo "github.com/motozapp/MotoZapp-BookingService/internal/infra/storage/notification"
	"github.com/motozapp/MotoZapp-BookingService/internal/service/notifications/models"
)

// fakeRepository in-memory реализация NotificationRepository
type fakeRepository struct {
	byID map[string]*domain.Notification
	err  error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: make(map[string]*domain.Notification)}
}

func (f *fakeRepository) Create(_ context.Context, n *domain.Notification) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.byID[n.ID]; ok {
		return false, nil
	}
	clone := *n
	f.byID[n.ID] = &clone
	return true, nil
}

func (f *fakeRepository) GetByUserID(_ context.Context, userID int64, filter domain.NotificationFilter) ([]*domain.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Notification
	for _, n := range f.byID {
		if n.UserID != userID {
			continue
		}
		if filter == domain.FilterUnread && n.Read {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRepository) MarkRead(_ context.Context, id string, userID int64) error {
	if f.err != nil {
		return f.err
	}
	n, ok := f.byID[id]
	if !ok || n.UserID != userID {
		return notificationRepo.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

func (f *fakeRepository) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var marked int64
	for _, n := range f.byID {
		if n.UserID == userID && !n.Read {
			n.Read = true
			marked++
		}
	}
	return marked, nil
}

func (f *fakeRepository) UnreadCount(_ context.Context, userID int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, n := range f.byID {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// fixedTimeProvider возвращает заранее заданное время
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(repo *fakeRepository, now time.Time) *Service {
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestAppend_AssignsIDAndUnreadState(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, testNow)

	resp, err := svc.Append(context.Background(), &models.AppendRequest{
		UserID:  1,
		Title:   "Booking Confirmed",
		Message: "Your booking for Oil Change has been confirmed",
		Type:    "service",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.False(t, resp.Read)
	assert.Equal(t, "service", resp.Type)
	assert.Equal(t, "Just now", resp.RelativeTime)

	count, err := svc.UnreadCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAppend_DuplicateDeliveryIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, testNow)

	req := &models.AppendRequest{
		ID:      "6f1e0288-5629-4aee-a3de-3c4f21f0b0aa",
		UserID:  1,
		Title:   "Booking Confirmed",
		Message: "Your booking has been confirmed",
		Type:    "service",
	}

	_, err := svc.Append(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Append(context.Background(), req)
	require.NoError(t, err)

	count, err := svc.UnreadCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAppend_Validation(t *testing.T) {
	svc := newTestService(newFakeRepository(), testNow)

	_, err := svc.Append(context.Background(), &models.AppendRequest{UserID: 0, Title: "t", Message: "m"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Append(context.Background(), &models.AppendRequest{UserID: 1, Title: "", Message: "m"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkAllReadThenAppend(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, testNow)
	ctx := context.Background()

	_, err := svc.Append(ctx, &models.AppendRequest{UserID: 5, Title: "t", Message: "m", Type: "service"})
	require.NoError(t, err)

	marked, err := svc.MarkAllRead(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	count, err := svc.UnreadCount(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Повторный вызов ничего не помечает
	marked, err = svc.MarkAllRead(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), marked)

	_, err = svc.Append(ctx, &models.AppendRequest{UserID: 5, Title: "t2", Message: "m2", Type: "service"})
	require.NoError(t, err)

	count, err = svc.UnreadCount(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkRead(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, testNow)
	ctx := context.Background()

	resp, err := svc.Append(ctx, &models.AppendRequest{UserID: 1, Title: "t", Message: "m", Type: "system"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, resp.ID, 1))

	// Повторная пометка - no-op
	require.NoError(t, svc.MarkRead(ctx, resp.ID, 1))

	// Чужое уведомление выглядит как отсутствующее
	assert.ErrorIs(t, svc.MarkRead(ctx, resp.ID, 2), ErrNotificationNotFound)

	assert.ErrorIs(t, svc.MarkRead(ctx, "unknown", 1), ErrNotificationNotFound)
	assert.ErrorIs(t, svc.MarkRead(ctx, "  ", 1), ErrInvalidInput)
}

func TestList_GroupsByRecency(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, testNow)
	ctx := context.Background()

	repo.byID["recent"] = &domain.Notification{
		ID: "recent", UserID: 1, Title: "t", Message: "m",
		Type: domain.NotificationService, CreatedAt: testNow.Add(-time.Hour),
	}
	repo.byID["old"] = &domain.Notification{
		ID: "old", UserID: 1, Title: "t", Message: "m",
		Type: domain.NotificationService, CreatedAt: testNow.Add(-5 * time.Hour),
	}

	feed, err := svc.List(ctx, 1, "all")
	require.NoError(t, err)

	require.Len(t, feed.New, 1)
	require.Len(t, feed.Earlier, 1)
	assert.Equal(t, "recent", feed.New[0].ID)
	assert.Equal(t, "old", feed.Earlier[0].ID)
	assert.Equal(t, 2, feed.UnreadCount)
	assert.Equal(t, "1h ago", feed.New[0].RelativeTime)
	assert.Equal(t, "5h ago", feed.Earlier[0].RelativeTime)
}

func TestList_UnreadFilter(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, testNow)
	ctx := context.Background()

	repo.byID["a"] = &domain.Notification{
		ID: "a", UserID: 1, Title: "t", Message: "m",
		Type: domain.NotificationService, Read: true, CreatedAt: testNow.Add(-time.Minute),
	}
	repo.byID["b"] = &domain.Notification{
		ID: "b", UserID: 1, Title: "t", Message: "m",
		Type: domain.NotificationService, CreatedAt: testNow.Add(-2 * time.Minute),
	}

	feed, err := svc.List(ctx, 1, "unread")
	require.NoError(t, err)

	require.Len(t, feed.New, 1)
	assert.Equal(t, "b", feed.New[0].ID)
	assert.Equal(t, 1, feed.UnreadCount)
}

func TestList_RepositoryErrorDegradesToEmptyFeed(t *testing.T) {
	repo := newFakeRepository()
	repo.err = errors.New("connection refused")
	svc := newTestService(repo, testNow)

	feed, err := svc.List(context.Background(), 1, "all")
	require.NoError(t, err)

	assert.Empty(t, feed.New)
	assert.Empty(t, feed.Earlier)
	assert.Equal(t, 0, feed.UnreadCount)
}

func TestAppendDraft(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, testNow)

	resp, err := svc.AppendDraft(context.Background(), &domain.NotificationDraft{
		UserID:  3,
		Title:   "Booking Declined",
		Message: "Your booking for Oil Change has been declined",
		Type:    domain.NotificationService,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, int64(3), resp.UserID)

	// nil draft - no-op
	resp, err = svc.AppendDraft(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, resp)
}
