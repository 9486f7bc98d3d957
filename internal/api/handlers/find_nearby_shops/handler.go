package find_nearby_shops

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/motozapp/MotoZapp-BookingService/internal/api/handlers"
	findNearbyShops "github.com/motozapp/MotoZapp-BookingService/internal/usecase/find_nearby_shops"
)

const (
	msgMissingCoordinates = "требуются параметры lat и lng"
	msgInvalidCoordinates = "некорректные координаты"
	msgUnknownBand        = "неизвестная полоса расстояний"
)

type Handler struct {
	useCase FindNearbyShopsUseCase
	logger  Logger
}

func NewHandler(useCase FindNearbyShopsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/nearby
// Query params: lat, lng (обязательно), band (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")

	if latStr == "" || lngStr == "" {
		h.logger.Warn("GET /shops/nearby - Missing coordinates")
		handlers.RespondBadRequest(w, msgMissingCoordinates)
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		h.logger.Warn("GET /shops/nearby - Invalid lat: %q", latStr)
		handlers.RespondBadRequest(w, msgInvalidCoordinates)
		return
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		h.logger.Warn("GET /shops/nearby - Invalid lng: %q", lngStr)
		handlers.RespondBadRequest(w, msgInvalidCoordinates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &findNearbyShops.Request{
		Lat:  lat,
		Lng:  lng,
		Band: r.URL.Query().Get("band"),
	})
	if err != nil {
		switch {
		case errors.Is(err, findNearbyShops.ErrUnknownBand):
			h.logger.Warn("GET /shops/nearby - Unknown band: %q", r.URL.Query().Get("band"))
			handlers.RespondBadRequest(w, msgUnknownBand)

		case errors.Is(err, findNearbyShops.ErrInvalidCoordinates):
			h.logger.Warn("GET /shops/nearby - Invalid coordinates: lat=%f, lng=%f", lat, lng)
			handlers.RespondBadRequest(w, msgInvalidCoordinates)

		default:
			h.logger.Error("GET /shops/nearby - Failed to find shops: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/nearby - Shops retrieved successfully: band=%q, count=%d",
		result.Band, len(result.Shops))
	handlers.RespondJSON(w, http.StatusOK, result)
}
