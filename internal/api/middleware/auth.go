package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/motozapp/MotoZapp-BookingService/internal/api/handlers"
)

// HeaderUserID заголовок с ID аутентифицированного пользователя
// Заголовок проставляет API-гейтвей после проверки токена
const HeaderUserID = "X-User-ID"

type actorIDKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет наличие идентификатора пользователя в запросе
// Запросы без корректного X-User-ID отклоняются с 401
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderUserID)
			if raw == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, HeaderUserID)
				handlers.RespondUnauthorized(w, "требуется аутентификация")
				return
			}

			actorID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || actorID <= 0 {
				logger.Warn("%s %s - Invalid %s header: %q", r.Method, r.URL.Path, HeaderUserID, raw)
				handlers.RespondUnauthorized(w, "требуется аутентификация")
				return
			}

			ctx := context.WithValue(r.Context(), actorIDKey{}, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorID извлекает ID аутентифицированного пользователя из контекста
func ActorID(ctx context.Context) (int64, bool) {
	actorID, ok := ctx.Value(actorIDKey{}).(int64)
	return actorID, ok
}
