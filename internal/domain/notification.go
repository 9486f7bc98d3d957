package domain

import "time"

// NotificationType категория уведомления
type NotificationType string

const (
	NotificationService  NotificationType = "service"
	NotificationMechanic NotificationType = "mechanic"
	NotificationSystem   NotificationType = "system"
)

// Notification пользовательское уведомление
// Неизменяемо после создания, кроме флага Read
type Notification struct {
	ID        string // UUID; повторная доставка того же события с тем же ID идемпотентна
	UserID    int64  // Владелец; уведомление видно только ему
	Title     string
	Message   string
	Type      NotificationType
	Read      bool
	CreatedAt time.Time
}

// IsRecent возвращает true, если уведомление моложе порога recency
// Используется для группировки ленты на "новые" и "ранние"
func (n *Notification) IsRecent(now time.Time) bool {
	return now.Sub(n.CreatedAt) <= RecencyWindow
}

// NotificationFilter фильтр ленты уведомлений
type NotificationFilter string

const (
	FilterAll    NotificationFilter = "all"
	FilterUnread NotificationFilter = "unread"
)

// NotificationDraft описание уведомления, которое следует создать
// Возвращается контроллером жизненного цикла как явный контракт побочного
// эффекта: переход статуса порождает не более одного уведомления контрагенту
type NotificationDraft struct {
	UserID  int64
	Title   string
	Message string
	Type    NotificationType
}
