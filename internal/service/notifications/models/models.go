package models

import (
	"fmt"
	"time"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
)

// Request модели

// AppendRequest запрос на добавление уведомления в ленту
// ID заполняется только при доставке события из push-канала,
// когда идентификатор уже присвоен авторитетным источником;
// для локальных событий ID генерируется сервисом
type AppendRequest struct {
	ID      string `json:"id,omitempty"`
	UserID  int64  `json:"userId"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Response модели

// NotificationResponse ответ с данными уведомления
type NotificationResponse struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"userId"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Type         string    `json:"type"`
	Read         bool      `json:"read"`
	Timestamp    time.Time `json:"timestamp"`
	RelativeTime string    `json:"relativeTime"` // Пересчитывается на каждый запрос
}

// FeedResponse лента уведомлений, сгруппированная по давности
// Внутри групп порядок тот же: новые первыми
type FeedResponse struct {
	New         []NotificationResponse `json:"new"`
	Earlier     []NotificationResponse `json:"earlier"`
	UnreadCount int                    `json:"unreadCount"`
}

// Методы конвертации

// FromDomainNotification конвертирует domain модель в DTO
// now нужен для вычисления относительного времени
func FromDomainNotification(n *domain.Notification, now time.Time) *NotificationResponse {
	if n == nil {
		return nil
	}

	return &NotificationResponse{
		ID:           n.ID,
		UserID:       n.UserID,
		Title:        n.Title,
		Message:      n.Message,
		Type:         string(n.Type),
		Read:         n.Read,
		Timestamp:    n.CreatedAt,
		RelativeTime: RelativeTime(n.CreatedAt, now),
	}
}

// BuildFeed группирует уведомления на "New" (не старше 4 часов) и "Earlier"
// Вход уже отсортирован по времени по убыванию, группировка порядок сохраняет
func BuildFeed(notifications []*domain.Notification, unreadCount int, now time.Time) *FeedResponse {
	feed := &FeedResponse{
		New:         make([]NotificationResponse, 0),
		Earlier:     make([]NotificationResponse, 0),
		UnreadCount: unreadCount,
	}

	for _, n := range notifications {
		resp := FromDomainNotification(n, now)
		if resp == nil {
			continue
		}
		if n.IsRecent(now) {
			feed.New = append(feed.New, *resp)
		} else {
			feed.Earlier = append(feed.Earlier, *resp)
		}
	}

	return feed
}

// RelativeTime форматирует давность события для отображения
// Менее минуты - "Just now", далее минуты, часы и дни
func RelativeTime(timestamp, now time.Time) string {
	elapsed := now.Sub(timestamp)

	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		days := int(elapsed.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	}
}

// ToDomainNotificationType конвертирует строку в domain.NotificationType
// Категория - свободный тег; неизвестные значения трактуются как system
func ToDomainNotificationType(t string) domain.NotificationType {
	switch domain.NotificationType(t) {
	case domain.NotificationService:
		return domain.NotificationService
	case domain.NotificationMechanic:
		return domain.NotificationMechanic
	case domain.NotificationSystem:
		return domain.NotificationSystem
	default:
		return domain.NotificationSystem
	}
}
