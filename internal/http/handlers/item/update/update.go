package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/online-rent/internal/http/middlewarectx"
	"github.com/magabrotheeeer/online-rent/internal/http/response"
	"github.com/magabrotheeeer/online-rent/internal/lib/sl"
	"github.com/magabrotheeeer/online-rent/internal/models"
	"github.com/magabrotheeeer/online-rent/internal/services/item"
)

// Service изменяет вещь.
type Service interface {
	Update(ctx context.Context, userID uuid.UUID, itemID string, req models.DummyItem) (*models.Item, error)
}

// Handler обрабатывает PUT /item/{itemId}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить вещь
// @Description Перезаписывает поля вещи. Вещь в аренде изменить нельзя.
// @Tags Item
// @Accept  json
// @Produce  json
// @Param itemId path string true "ID вещи"
// @Param request body models.DummyItem true "Новые данные вещи"
// @Success 201 {object} models.Item
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Нет сессии, вещь в аренде или неверный ID"
// @Failure 404 {object} response.ErrorResponse "Вещь не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /item/{itemId} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.item.update"

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
	if _, err := uuid.Parse(itemID); err != nil {
		log.Info("malformed item id", slog.String("item_id", itemID))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.MsgInvalidItemID))
		return
	}

	var req models.DummyItem
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.MsgInvalidBody))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	it, err := h.service.Update(r.Context(), userID, itemID, req)
	switch {
	case errors.Is(err, item.ErrItemOnRent):
		log.Info("item is on rent", slog.String("item_id", itemID))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.MsgItemOnRent))
		return
	case errors.Is(err, item.ErrItemNotFound):
		log.Info("item not found", slog.String("item_id", itemID))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(response.MsgItemNotFound))
		return
	case errors.Is(err, item.ErrInvalidItemID):
		log.Info("malformed item id", slog.String("item_id", itemID))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.MsgInvalidItemID))
		return
	case err != nil:
		log.Error("failed to update item", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}

	log.Info("item updated", slog.String("item_id", itemID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, it)
}
