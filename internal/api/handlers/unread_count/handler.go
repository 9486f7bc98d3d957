package unread_count

import (
	"net/http"

	"github.com/motozapp/MotoZapp-BookingService/internal/api/handlers"
	"github.com/motozapp/MotoZapp-BookingService/internal/api/middleware"
)

const (
	msgMissingActorID = "требуется аутентификация"
)

// UnreadCountResponse HTTP response model
type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}

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

// Handle GET /api/v1/notifications/unread-count
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.ActorID(r.Context())
	if !ok {
		h.logger.Warn("GET /notifications/unread-count - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /notifications/unread-count - Failed to count unread: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, UnreadCountResponse{UnreadCount: count})
}
