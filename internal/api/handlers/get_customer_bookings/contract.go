package get_customer_bookings

import (
	"context"

	"github.com/motozapp/MotoZapp-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListByCounterparty(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
