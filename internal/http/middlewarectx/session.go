// Package middlewarectx содержит HTTP middleware сервиса: проверку сессии
// с передачей идентификатора пользователя через контекст и сбор метрик.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/online-rent/internal/http/response"
	"github.com/magabrotheeeer/online-rent/internal/lib/sl"
	"github.com/magabrotheeeer/online-rent/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID — ключ идентификатора пользователя в контексте.
const UserID Key = "user_id"

// Resolver находит пользователя по токену сессии.
type Resolver interface {
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

// SessionMiddleware пропускает запрос дальше только при действующей сессии.
// Без сессии отвечает 401 {"error":"Not logged in"}.
func SessionMiddleware(sessions Resolver, cookie session.Cookie, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := cookie.Read(r)
			userID, err := sessions.Resolve(r.Context(), token)
			if errors.Is(err, session.ErrNotFound) {
				log.Info("request without valid session", sl.Token(token))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.MsgNotLoggedIn))
				return
			}
			if err != nil {
				log.Error("failed to resolve session", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error(response.MsgInternalError))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext возвращает идентификатор пользователя, положенный SessionMiddleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserID).(uuid.UUID)
	return id, ok
}
