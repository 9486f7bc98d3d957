package find_nearby_shops

import (
	"sort"

	"github.com/motozapp/MotoZapp-BookingService/internal/domain"
	shopClient "github.com/motozapp/MotoZapp-BookingService/internal/integrations/shopservice"
)

// filterByDistance оставляет мастерские, чье расстояние от origin попадает в полосу
// Мастерские без координат исключаются, нулевое расстояние им не приписывается
// Результат отсортирован по возрастанию расстояния
func filterByDistance(shops []*shopClient.Shop, origin domain.Coordinates, band domain.DistanceBand) []ShopResult {
	results := make([]ShopResult, 0, len(shops))

	for _, shop := range shops {
		if shop == nil || shop.Location == nil {
			continue
		}

		km := domain.Haversine(origin, domain.Coordinates{
			Lat: shop.Location.Lat,
			Lng: shop.Location.Lng,
		})
		if !band.Contains(km) {
			continue
		}

		results = append(results, ShopResult{
			ID:         shop.ID,
			Name:       shop.Name,
			Services:   shop.Services,
			Lat:        shop.Location.Lat,
			Lng:        shop.Location.Lng,
			DistanceKm: km,
			Distance:   domain.FormatDistance(km),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	return results
}
