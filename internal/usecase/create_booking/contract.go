package create_booking

import (
	"context"
	"time"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	"github.com/motozapp/MotoZapp-BookingService/internal/integrations/identityservice"
	"github.com/motozapp/MotoZapp-BookingService/internal/integrations/shopservice"
	notificationModels "github.com/motozapp/MotoZapp-BookingService/internal/service/notifications/models"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// NotificationService интерфейс сервиса уведомлений
type NotificationService interface {
	Append(ctx context.Context, req *notificationModels.AppendRequest) (*notificationModels.NotificationResponse, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*identityservice.User, error)
}

// ShopServiceClient интерфейс клиента для ShopService
type ShopServiceClient interface {
	GetShop(ctx context.Context, shopID int64) (*shopservice.Shop, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
