package models

import (
	"errors"
	"time"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidRole возвращается при некорректной роли стороны сделки
	ErrInvalidRole = errors.New("invalid counterparty role")
)

// Request модели

// UpdateStatusRequest запрос на перевод бронирования в новый статус
type UpdateStatusRequest struct {
	ActorID int64  `json:"actorId"`
	Status  string `json:"status"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ActorID int64 `json:"actorId"`
}

// ListBookingsRequest запрос на выборку бронирований стороны сделки
type ListBookingsRequest struct {
	ActorID int64   `json:"actorId"`
	Role    string  `json:"role"` // customer | shop
	ID      int64   `json:"id"`   // ID клиента или мастерской
	Status  *string `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.CounterpartyFilter, error) {
	role, err := ToDomainRole(r.Role)
	if err != nil {
		return domain.CounterpartyFilter{}, err
	}

	filter := domain.CounterpartyFilter{
		Role: role,
		ID:   r.ID,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// VehicleResponse данные транспортного средства
type VehicleResponse struct {
	Brand *string `json:"brand,omitempty"`
	Model *string `json:"model,omitempty"`
	Year  *int    `json:"year,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	CustomerID  int64   `json:"customerId"`
	ShopID      int64   `json:"shopId"`
	ServiceType string  `json:"serviceType"`
	BookingDate string  `json:"bookingDate"` // "2025-06-01"
	StartTime   string  `json:"startTime"`   // "10:00"
	Notes       *string `json:"notes,omitempty"`

	Vehicle *VehicleResponse `json:"vehicle,omitempty"`

	Status string `json:"status"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"` // null до первого перехода статуса
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		ShopID:      b.ShopID,
		ServiceType: b.ServiceType,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		Notes:       b.Notes,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	// Транспортное средство опционально - не включаем пустую структуру
	if b.Vehicle.Brand != nil || b.Vehicle.Model != nil || b.Vehicle.Year != nil {
		resp.Vehicle = &VehicleResponse{
			Brand: b.Vehicle.Brand,
			Model: b.Vehicle.Model,
			Year:  b.Vehicle.Year,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// ToDomainRole конвертирует строку в domain.CounterpartyRole с валидацией
func ToDomainRole(role string) (domain.CounterpartyRole, error) {
	switch domain.CounterpartyRole(role) {
	case domain.RoleCustomer:
		return domain.RoleCustomer, nil
	case domain.RoleShop:
		return domain.RoleShop, nil
	default:
		return "", ErrInvalidRole
	}
}
