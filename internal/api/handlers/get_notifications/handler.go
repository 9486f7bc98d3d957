package get_notifications

import (
	"net/http"

	"github.com/motozapp/MotoZapp-BookingService/internal/api/handlers"
	"github.com/motozapp/MotoZapp-BookingService/internal/api/middleware"
)

const (
	msgMissingActorID = "требуется аутентификация"
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

// Handle GET /api/v1/notifications
// Query params: filter=all|unread (опционально, по умолчанию all)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.ActorID(r.Context())
	if !ok {
		h.logger.Warn("GET /notifications - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	filter := r.URL.Query().Get("filter")

	feed, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		h.logger.Error("GET /notifications - Failed to get feed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /notifications - Feed retrieved successfully: user_id=%d, new=%d, earlier=%d",
		userID, len(feed.New), len(feed.Earlier))
	handlers.RespondJSON(w, http.StatusOK, feed)
}
