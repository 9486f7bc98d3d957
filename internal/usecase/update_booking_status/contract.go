package update_booking_status

import (
	"context"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	bookingModels "github.com/motozapp/MotoZapp-BookingService/internal/service/bookings/models"
	notificationModels "github.com/motozapp/MotoZapp-BookingService/internal/service/notifications/models"
)

// BookingService интерфейс контроллера жизненного цикла бронирований
type BookingService interface {
	UpdateStatus(ctx context.Context, bookingID int64, req *bookingModels.UpdateStatusRequest) (*bookingModels.BookingResponse, *domain.NotificationDraft, error)
}

// NotificationService интерфейс сервиса уведомлений
type NotificationService interface {
	AppendDraft(ctx context.Context, draft *domain.NotificationDraft) (*notificationModels.NotificationResponse, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
