package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Все обязательные поля должны быть заполнены
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceType) == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}
	if len(req.ServiceType) > domain.MaxServiceTypeLength {
		return fmt.Errorf("%w: serviceType is too long", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	if req.Vehicle != nil && req.Vehicle.Year != nil {
		year := *req.Vehicle.Year
		if year < domain.MinVehicleYear || year > time.Now().Year()+1 {
			return fmt.Errorf("%w: vehicle year is out of range", ErrInvalidInput)
		}
	}

	return nil
}

// validateDate проверяет, что дата визита не в прошлом
// Сравниваются календарные дни: бронирование на сегодня допустимо
func validateDate(bookingDate time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if dateOnly.Before(today) {
		return ErrDateInPast
	}

	return nil
}
