package mark_all_notifications_read

import (
	"net/http"

	"github.com/motozapp/MotoZapp-BookingService/internal/api/handlers"
	"github.com/motozapp/MotoZapp-BookingService/internal/api/middleware"
)

const (
	msgMissingActorID = "требуется аутентификация"
)

// MarkAllReadResponse HTTP response model
type MarkAllReadResponse struct {
	Marked int64 `json:"marked"`
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

// Handle POST /api/v1/notifications/read-all
// Идемпотентен: повторный вызов помечает 0 уведомлений
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.ActorID(r.Context())
	if !ok {
		h.logger.Warn("POST /notifications/read-all - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActorID)
		return
	}

	marked, err := h.service.MarkAllRead(r.Context(), userID)
	if err != nil {
		h.logger.Error("POST /notifications/read-all - Failed to mark all read: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /notifications/read-all - Marked %d notifications read: user_id=%d", marked, userID)
	handlers.RespondJSON(w, http.StatusOK, MarkAllReadResponse{Marked: marked})
}
