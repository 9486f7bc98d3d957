package create_booking

import (
	"errors"
	"net/http"

	"github.com/motozapp/MotoZapp-BookingService/internal/api/handlers"
	"github.com/motozapp/MotoZapp-BookingService/internal/api/middleware"
	createBooking "github.com/motozapp/MotoZapp-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgNotAuthenticated   = "требуется аутентификация"
	msgShopNotFound       = "мастерская не найдена"
	msgDateInPast         = "дата бронирования в прошлом"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.ActorID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing actor in context")
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrNotAuthenticated):
			h.logger.Warn("POST /bookings - Actor not resolved: customer_id=%d", customerID)
			handlers.RespondUnauthorized(w, msgNotAuthenticated)

		case errors.Is(err, createBooking.ErrShopNotFound):
			h.logger.Warn("POST /bookings - Shop not found: shop_id=%d", req.ShopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: customer_id=%d, shop_id=%d", customerID, req.ShopID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: customer_id=%d, shop_id=%d, error=%v",
				customerID, req.ShopID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, shop_id=%d, error=%v",
				customerID, req.ShopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%d, shop_id=%d",
		result.ID, customerID, req.ShopID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
