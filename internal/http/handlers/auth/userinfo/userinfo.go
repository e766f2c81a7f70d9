// Package userinfo отдаёт имя текущего пользователя.
package userinfo

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/online-rent/internal/http/middlewarectx"
	"github.com/magabrotheeeer/online-rent/internal/http/response"
	"github.com/magabrotheeeer/online-rent/internal/lib/sl"
	"github.com/magabrotheeeer/online-rent/internal/models"
)

// Service возвращает пользователя по идентификатору.
type Service interface {
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Response — имя пользователя текущей сессии.
type Response struct {
	UserName string `json:"userName"`
}

// Handler обрабатывает GET /userinfo.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Tags Auth
// @Produce  json
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /userinfo [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.userinfo"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.MsgNotLoggedIn))
		return
	}

	user, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		// сессия есть, а пользователя нет: считаем это сбоем
		log.Error("failed to load current user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, Response{UserName: user.UserName})
}
