package find_nearby_shops

import (
	"context"
	"fmt"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
)

// UseCase use case для поиска мастерских в заданной полосе расстояний
type UseCase struct {
	shopClient ShopServiceClient
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(shopClient ShopServiceClient, logger Logger) *UseCase {
	return &UseCase{
		shopClient: shopClient,
		logger:     logger,
	}
}

// Execute выполняет use case поиска мастерских поблизости
// Недоступность каталога не фатальна: возвращается пустой список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	band, err := resolveBand(req.Band)
	if err != nil {
		uc.logger.Warn("FindNearbyShops: unknown band %q", req.Band)
		return nil, err
	}

	if err := validateCoordinates(req.Lat, req.Lng); err != nil {
		uc.logger.Warn("FindNearbyShops: validation failed: %v", err)
		return nil, err
	}

	list, err := uc.shopClient.ListShops(ctx)
	if err != nil {
		uc.logger.Warn("FindNearbyShops: shop catalog unavailable, returning empty list: %v", err)
		return &Response{Band: band.Label, Shops: []ShopResult{}}, nil
	}

	origin := domain.Coordinates{Lat: req.Lat, Lng: req.Lng}
	shops := filterByDistance(list.Shops, origin, band)

	uc.logger.Info("FindNearbyShops: band=%q, origin=(%f, %f), matched %d of %d shops",
		band.Label, req.Lat, req.Lng, len(shops), len(list.Shops))

	return &Response{Band: band.Label, Shops: shops}, nil
}

func resolveBand(label string) (domain.DistanceBand, error) {
	if label == "" {
		band, _ := domain.BandByLabel(domain.BandAll)
		return band, nil
	}

	band, ok := domain.BandByLabel(label)
	if !ok {
		return domain.DistanceBand{}, fmt.Errorf("%w: %s", ErrUnknownBand, label)
	}
	return band, nil
}

func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: lat must be in [-90, 90], got %f", ErrInvalidCoordinates, lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: lng must be in [-180, 180], got %f", ErrInvalidCoordinates, lng)
	}
	return nil
}
