package mark_notification_read

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/motozapp/MotoZapp-BookingService/internal/api/handlers"
	"github.com/motozapp/MotoZapp-BookingService/internal/api/middleware"
	"github.com/motozapp/MotoZapp-BookingService/internal/service/notifications"
)

const (
	msgMissingActorID        = "требуется аутентификация"
	msgInvalidNotificationID = "некорректный ID уведомления"
	msgNotFound              = "уведомление не найдено"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/notifications/{notificationId}/read
// Повторная пометка прочитанного уведомления - no-op
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.ActorID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /notifications/{id}/read - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	vars := mux.Vars(r)
	notificationID := vars["notificationId"]

	err := h.service.MarkRead(r.Context(), notificationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrNotificationNotFound):
			h.logger.Warn("PATCH /notifications/{id}/read - Notification not found: id=%s, user_id=%d",
				notificationID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, notifications.ErrInvalidInput):
			h.logger.Warn("PATCH /notifications/{id}/read - Invalid notification ID: %q", notificationID)
			handlers.RespondBadRequest(w, msgInvalidNotificationID)

		default:
			h.logger.Error("PATCH /notifications/{id}/read - Failed to mark read: id=%s, error=%v",
				notificationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /notifications/{id}/read - Notification marked read: id=%s, user_id=%d",
		notificationID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
