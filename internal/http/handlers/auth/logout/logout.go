// Package logout реализует HTTP-обработчик выхода. Выход без сессии
// тоже считается успешным.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/online-rent/internal/http/response"
	"github.com/magabrotheeeer/online-rent/internal/lib/sl"
	"github.com/magabrotheeeer/online-rent/internal/session"
)

// Service закрывает сессию по токену.
type Service interface {
	Logout(ctx context.Context, token string) error
}

// Handler обрабатывает выход пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
	cookie  session.Cookie
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, cookie session.Cookie) *Handler {
	return &Handler{
		log:     log,
		service: service,
		cookie:  cookie,
	}
}

// ServeHTTP godoc
// @Summary Выход
// @Description Закрывает сессию, если она есть, и удаляет cookie.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.SuccessResponse "Logged out"
// @Router /logout [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := h.cookie.Read(r)
	if err := h.service.Logout(r.Context(), token); err != nil {
		// сессия истечёт сама, клиенту всё равно отвечаем успехом
		log.Error("failed to destroy session", sl.Err(err), sl.Token(token))
	}

	h.cookie.Clear(w)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.Success(response.MsgLoggedOut))
}
