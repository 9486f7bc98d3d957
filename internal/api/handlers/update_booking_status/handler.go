package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/motozapp/MotoZapp-BookingService/internal/api/handlers"
	"github.com/motozapp/MotoZapp-BookingService/internal/api/middleware"
	"github.com/motozapp/MotoZapp-BookingService/internal/service/bookings"
	updateStatus "github.com/motozapp/MotoZapp-BookingService/internal/usecase/update_booking_status"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActorID     = "требуется аутентификация"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgIllegalTransition  = "недопустимый переход статуса"
	msgInvalidStatus      = "некорректный статус"
)

type Handler struct {
	useCase UpdateBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.ActorID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	// Декодируем body
	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateStatus.Request{
		BookingID: bookingID,
		ActorID:   actorID,
		Status:    req.Status,
	})
	if err != nil {
		h.respondError(w, bookingID, actorID, req.Status, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated successfully: booking_id=%d, actor_id=%d, status=%s",
		bookingID, actorID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result.Booking)
}

func (h *Handler) respondError(w http.ResponseWriter, bookingID, actorID int64, status string, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%d, actor_id=%d", bookingID, actorID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, bookings.ErrIllegalTransition):
		h.logger.Warn("PATCH /bookings/{id}/status - Illegal transition: booking_id=%d, status=%s", bookingID, status)
		handlers.RespondConflict(w, msgIllegalTransition)

	case errors.Is(err, bookings.ErrInvalidInput):
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid status: booking_id=%d, status=%q", bookingID, status)
		handlers.RespondBadRequest(w, msgInvalidStatus)

	default:
		h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
