package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/online-rent/internal/http/middlewarectx"
	"github.com/magabrotheeeer/online-rent/internal/http/response"
	"github.com/magabrotheeeer/online-rent/internal/lib/sl"
	"github.com/magabrotheeeer/online-rent/internal/services/item"
)

// Service удаляет вещь.
type Service interface {
	Delete(ctx context.Context, userID uuid.UUID, itemID string) error
}

// Handler обрабатывает DELETE /item/{itemId}.
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
// @Summary Удалить вещь
// @Tags Item
// @Produce  json
// @Param itemId path string true "ID вещи"
// @Success 200 {object} response.SuccessResponse "Item deleted"
// @Failure 401 {object} response.ErrorResponse "Нет сессии, вещь в аренде или неверный ID"
// @Failure 404 {object} response.ErrorResponse "Вещь не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /item/{itemId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.item.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.MsgNotLoggedIn))
		return
	}

	itemID := chi.URLParam(r, "itemId")
	err := h.service.Delete(r.Context(), userID, itemID)
	switch {
	case errors.Is(err, item.ErrItemOnRent):
		log.Info("item is on rent", slog.String("item_id", itemID))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.MsgItemOnRent))
		return
	case errors.Is(err, item.ErrItemNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(response.MsgItemNotFound))
		return
	case errors.Is(err, item.ErrInvalidItemID):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.MsgInvalidItemID))
		return
	case err != nil:
		log.Error("failed to delete item", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}

	log.Info("item deleted", slog.String("item_id", itemID))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.Success(response.MsgItemDeleted))
}
