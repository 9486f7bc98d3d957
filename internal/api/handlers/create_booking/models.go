package create_booking

import (
	"time"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	createBooking "github.com/motozapp/MotoZapp-BookingService/internal/usecase/create_booking"
	"github.com/motozapp/MotoZapp-BookingService/pkg/types"
)

// VehicleRequest данные транспортного средства в HTTP запросе
type VehicleRequest struct {
	Brand *string `json:"brand,omitempty"`
	Model *string `json:"model,omitempty"`
	Year  *int    `json:"year,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ShopID      int64           `json:"shopId"`
	ServiceType string          `json:"serviceType"`
	BookingDate string          `json:"bookingDate"` // "2025-06-01"
	StartTime   string          `json:"startTime"`   // "10:00"
	Notes       *string         `json:"notes,omitempty"`
	Vehicle     *VehicleRequest `json:"vehicle,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customerId"`
	ShopID      int64           `json:"shopId"`
	ServiceType string          `json:"serviceType"`
	BookingDate string          `json:"bookingDate"`
	StartTime   string          `json:"startTime"`
	Notes       *string         `json:"notes,omitempty"`
	Vehicle     *VehicleRequest `json:"vehicle,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   *string         `json:"updatedAt"` // null, пока переходов статуса не было
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		CustomerID:  customerID,
		ShopID:      r.ShopID,
		ServiceType: r.ServiceType,
		Date:        bookingDate,
		StartTime:   startTime,
		Notes:       r.Notes,
	}

	if r.Vehicle != nil {
		req.Vehicle = &createBooking.Vehicle{
			Brand: r.Vehicle.Brand,
			Model: r.Vehicle.Model,
			Year:  r.Vehicle.Year,
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	httpResp := &BookingResponse{
		ID:          resp.ID,
		CustomerID:  resp.CustomerID,
		ShopID:      resp.ShopID,
		ServiceType: resp.ServiceType,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		Notes:       resp.Notes,
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}

	if resp.UpdatedAt != nil {
		updatedAt := resp.UpdatedAt.Format(time.RFC3339)
		httpResp.UpdatedAt = &updatedAt
	}

	if resp.Vehicle != nil {
		httpResp.Vehicle = &VehicleRequest{
			Brand: resp.Vehicle.Brand,
			Model: resp.Vehicle.Model,
			Year:  resp.Vehicle.Year,
		}
	}

	return httpResp
}
