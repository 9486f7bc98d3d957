package update_booking_status

import (
	bookingsmodels "github.com/motozapp/MotoZapp-BookingService/internal/service/bookings/models"
)

// Request модель запроса на смену статуса бронирования
type Request struct {
	BookingID int64  // ID бронирования
	ActorID   int64  // ID пользователя, запросившего смену статуса
	Status    string // Целевой статус ("confirmed", "completed", "cancelled")
}

// Response модель ответа с обновленным бронированием
type Response struct {
	Booking *bookingsmodels.BookingResponse
}
