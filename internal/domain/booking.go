package domain

import (
	"time"

	"github.com/motozapp/MotoZapp-BookingService/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// transitionTable таблица допустимых переходов статусов
// Статус движется только вперед: pending -> confirmed -> completed,
// отмена возможна из pending и confirmed. Переход в тот же статус запрещен.
var transitionTable = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition возвращает true, если переход from -> to допустим
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range transitionTable[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Vehicle описание транспортного средства клиента (опционально)
type Vehicle struct {
	Brand *string
	Model *string
	Year  *int
}

// Booking бронирование услуги мастерской клиентом
type Booking struct {
	ID          int64
	CustomerID  int64
	ShopID      int64
	ServiceType string
	BookingDate time.Time        // Дата визита (без времени)
	StartTime   types.TimeString // Время визита, например "10:00"
	Notes       *string

	// Данные транспортного средства (опционально)
	Vehicle Vehicle

	Status BookingStatus

	CreatedAt time.Time
	// UpdatedAt NULL до первого перехода статуса; выставляется
	// на каждом переходе и только на переходах
	UpdatedAt *time.Time
}

// IsActive возвращает true, если бронирование в активном состоянии
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal возвращает true, если бронирование в терминальном состоянии
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return CanTransition(b.Status, StatusCancelled)
}

// HasTransitioned возвращает true, если бронирование хотя бы раз меняло статус
func (b *Booking) HasTransitioned() bool {
	return b.UpdatedAt != nil
}

// CounterpartyRole роль стороны бронирования
type CounterpartyRole string

const (
	RoleCustomer CounterpartyRole = "customer"
	RoleShop     CounterpartyRole = "shop"
)

// CounterpartyFilter фильтр для выборки бронирований по стороне сделки
type CounterpartyFilter struct {
	Role   CounterpartyRole // Чья выборка: клиента или мастерской
	ID     int64            // ID клиента или мастерской
	Status *BookingStatus   // Фильтр по статусу (опционально)
}
