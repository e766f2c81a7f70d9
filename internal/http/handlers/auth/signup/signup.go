// Package signup реализует HTTP-обработчик регистрации пользователя.
//
// После успешной регистрации пользователь сразу считается вошедшим:
// сервер открывает сессию и выставляет cookie.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/online-rent/internal/http/response"
	"github.com/magabrotheeeer/online-rent/internal/lib/sl"
	"github.com/magabrotheeeer/online-rent/internal/models"
	"github.com/magabrotheeeer/online-rent/internal/services/auth"
	"github.com/magabrotheeeer/online-rent/internal/session"
)

// Service описывает регистрацию пользователя.
type Service interface {
	Signup(ctx context.Context, creds models.Credentials) (string, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	cookie   session.Cookie
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, cookie session.Cookie) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		cookie:   cookie,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт пользователя, открывает сессию и выставляет cookie.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.Credentials true "Имя пользователя и пароль"
// @Success 201 {object} response.SuccessResponse "Signed up"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Имя уже занято"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
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

	token, err := h.service.Signup(r.Context(), req)
	if errors.Is(err, auth.ErrUserExists) {
		log.Info("username already taken", slog.String("username", req.UserName))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.MsgUserExists))
		return
	}
	if err != nil {
		log.Error("signup failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.MsgInternalError))
		return
	}

	h.cookie.Write(w, token)
	log.Info("user signed up", slog.String("username", req.UserName), sl.Token(token))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.Success(response.MsgSignedUp))
}
