package domain

import "time"

// Business validation constants
const (
	MaxServiceTypeLength = 120
	MaxNotesLength       = 500
	MaxTitleLength       = 150
	MaxMessageLength     = 500
	MinVehicleYear       = 1950
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// RecencyWindow граница группировки ленты уведомлений на "New" и "Earlier"
// Фиксированная политика отображения, не конфигурируется
const RecencyWindow = 4 * time.Hour

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses список терминальных статусов
// Используется для выборки истории бронирований
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}
