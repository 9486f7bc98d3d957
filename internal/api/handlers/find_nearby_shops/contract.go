package find_nearby_shops

import (
	"context"

	findNearbyShops "github.com/motozapp/MotoZapp-BookingService/internal/usecase/find_nearby_shops"
)

type FindNearbyShopsUseCase interface {
	Execute(ctx context.Context, req *findNearbyShops.Request) (*findNearbyShops.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
