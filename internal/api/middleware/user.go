package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
)

// HeaderUserID заголовок с ID пользователя
const HeaderUserID = "X-User-ID"

const msgInvalidUserID = "некорректный заголовок X-User-ID"

type userIDKey struct{}

// UserContext кладет в контекст ID пользователя из X-User-ID.
// Без заголовка используется пользователь по умолчанию. Это идентификация,
// а не аутентификация.
func UserContext(defaultUserID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := defaultUserID

			if raw := r.Header.Get(HeaderUserID); raw != "" {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil || id <= 0 {
					handlers.RespondBadRequest(w, msgInvalidUserID)
					return
				}
				userID = id
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext возвращает ID пользователя, 0 если его нет
func UserIDFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey{}).(int64)
	return id
}
