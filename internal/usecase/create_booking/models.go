package create_booking

import (
	"time"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	"github.com/motozapp/MotoZapp-BookingService/pkg/types"
)

// Vehicle описание транспортного средства в запросе (опционально)
type Vehicle struct {
	Brand *string // Марка
	Model *string // Модель
	Year  *int    // Год выпуска
}

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID  int64            // ID клиента (актор запроса)
	ShopID      int64            // ID мастерской
	ServiceType string           // Вид услуги, свободная строка
	Date        time.Time        // Дата визита (без времени)
	StartTime   types.TimeString // Время визита, например "10:00"
	Notes       *string          // Дополнительные заметки (опционально)
	Vehicle     *Vehicle         // Транспортное средство (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64            // ID созданного бронирования
	CustomerID  int64            // ID клиента
	ShopID      int64            // ID мастерской
	ServiceType string           // Вид услуги
	BookingDate time.Time        // Дата визита
	StartTime   types.TimeString // Время визита
	Notes       *string          // Заметки
	Vehicle     *Vehicle         // Транспортное средство

	Status string // Всегда pending для нового бронирования

	CreatedAt time.Time  // Время создания
	UpdatedAt *time.Time // nil: переходов статуса еще не было
}

// toDomainBooking собирает domain модель нового бронирования
func (r *Request) toDomainBooking() *domain.Booking {
	booking := &domain.Booking{
		CustomerID:  r.CustomerID,
		ShopID:      r.ShopID,
		ServiceType: r.ServiceType,
		BookingDate: r.Date,
		StartTime:   r.StartTime,
		Notes:       r.Notes,
		Status:      domain.StatusPending,
	}

	if r.Vehicle != nil {
		booking.Vehicle = domain.Vehicle{
			Brand: r.Vehicle.Brand,
			Model: r.Vehicle.Model,
			Year:  r.Vehicle.Year,
		}
	}

	return booking
}

// fromDomainBooking собирает ответ из domain модели
func fromDomainBooking(b *domain.Booking) *Response {
	resp := &Response{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		ShopID:      b.ShopID,
		ServiceType: b.ServiceType,
		BookingDate: b.BookingDate,
		StartTime:   b.StartTime,
		Notes:       b.Notes,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if b.Vehicle.Brand != nil || b.Vehicle.Model != nil || b.Vehicle.Year != nil {
		resp.Vehicle = &Vehicle{
			Brand: b.Vehicle.Brand,
			Model: b.Vehicle.Model,
			Year:  b.Vehicle.Year,
		}
	}

	return resp
}
