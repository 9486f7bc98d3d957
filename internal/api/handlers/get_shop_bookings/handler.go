package get_shop_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/motozapp/MotoZapp-BookingService/internal/api/handlers"
	"github.com/motozapp/MotoZapp-BookingService/internal/api/middleware"
	"github.com/motozapp/MotoZapp-BookingService/internal/service/bookings"
	"github.com/motozapp/MotoZapp-BookingService/internal/service/bookings/models"
	"github.com/motozapp/MotoZapp-BookingService/pkg/ptr"
)

const (
	msgInvalidShopID  = "некорректный ID мастерской"
	msgMissingActorID = "требуется аутентификация"
	msgForbidden      = "доступ запрещен"
	msgShopNotFound   = "мастерская не найдена"
	msgInvalidStatus  = "некорректный статус"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем shopId из URL
	vars := mux.Vars(r)
	shopIDStr := vars["shopId"]

	shopID, err := strconv.ParseInt(shopIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{shopId}/bookings - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	actorID, ok := middleware.ActorID(r.Context())
	if !ok {
		h.logger.Warn("GET /shops/{shopId}/bookings - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	status := r.URL.Query().Get("status")

	serviceReq := &models.ListBookingsRequest{
		ActorID: actorID,
		Role:    "shop",
		ID:      shopID,
	}
	if status != "" {
		serviceReq.Status = ptr.Ptr(status)
	}

	// Получаем бронирования мастерской (сервис сам проверит владельца)
	result, err := h.service.ListByCounterparty(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /shops/{shopId}/bookings - Access denied: shop_id=%d, actor_id=%d",
				shopID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrShopNotFound):
			h.logger.Warn("GET /shops/{shopId}/bookings - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /shops/{shopId}/bookings - Invalid status: %q", status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /shops/{shopId}/bookings - Failed to get bookings: shop_id=%d, error=%v",
				shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{shopId}/bookings - Bookings retrieved successfully: shop_id=%d, count=%d",
		shopID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
