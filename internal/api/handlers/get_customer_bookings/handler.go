package get_customer_bookings

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
	msgInvalidCustomerID = "некорректный ID клиента"
	msgMissingActorID    = "требуется аутентификация"
	msgForbidden         = "доступ запрещен"
	msgInvalidStatus     = "некорректный статус"
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

// Handle GET /api/v1/customers/{customerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем customerId из URL
	vars := mux.Vars(r)
	customerIDStr := vars["customerId"]

	customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{customerId}/bookings - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	actorID, ok := middleware.ActorID(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/{customerId}/bookings - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")

	serviceReq := &models.ListBookingsRequest{
		ActorID: actorID,
		Role:    "customer",
		ID:      customerID,
	}
	if status != "" {
		serviceReq.Status = ptr.Ptr(status)
	}

	result, err := h.service.ListByCounterparty(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /customers/{customerId}/bookings - Access denied: customer_id=%d, actor_id=%d",
				customerID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /customers/{customerId}/bookings - Invalid status: %q", status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /customers/{customerId}/bookings - Failed to get bookings: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{customerId}/bookings - Bookings retrieved successfully: customer_id=%d, count=%d",
		customerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
