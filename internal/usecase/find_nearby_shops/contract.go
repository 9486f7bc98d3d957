package find_nearby_shops

import (
	"context"

	shopClient "github.com/motozapp/MotoZapp-BookingService/internal/integrations/shopservice"
)

// ShopServiceClient интерфейс для работы с каталогом мастерских
type ShopServiceClient interface {
	ListShops(ctx context.Context) (*shopClient.ShopListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
