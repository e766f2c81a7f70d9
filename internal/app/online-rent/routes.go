// Package onlinerent собирает HTTP-приложение: хранилище, сессии,
// сервисы и маршруты.
package onlinerent

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-спецификации.
	_ "github.com/magabrotheeeer/online-rent/docs"
	"github.com/magabrotheeeer/online-rent/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/online-rent/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/online-rent/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/online-rent/internal/http/handlers/auth/userinfo"
	"github.com/magabrotheeeer/online-rent/internal/http/handlers/item/create"
	"github.com/magabrotheeeer/online-rent/internal/http/handlers/item/list"
	"github.com/magabrotheeeer/online-rent/internal/http/handlers/item/remove"
	"github.com/magabrotheeeer/online-rent/internal/http/handlers/item/update"
	"github.com/magabrotheeeer/online-rent/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/online-rent/internal/services/auth"
	itemservice "github.com/magabrotheeeer/online-rent/internal/services/item"
	"github.com/magabrotheeeer/online-rent/internal/session"
)

// Deps — зависимости, из которых строятся обработчики.
type Deps struct {
	Logger   *slog.Logger
	Auth     *authservice.Service
	Items    *itemservice.Service
	Sessions *session.Manager
	Cookie   session.Cookie
	Metrics  *middlewarectx.Metrics
	Gatherer prometheus.Gatherer
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		d.Metrics.Middleware,
	)

	// Открытые конечные точки
	r.Post("/signup", signup.New(d.Logger, d.Auth, d.Cookie).ServeHTTP)
	r.Post("/login", login.New(d.Logger, d.Auth, d.Cookie).ServeHTTP)
	r.Get("/logout", logout.New(d.Logger, d.Auth, d.Cookie).ServeHTTP)

	// Группа с проверкой сессии
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(d.Sessions, d.Cookie, d.Logger))
		r.Get("/item", list.New(d.Logger, d.Items).ServeHTTP)
		r.Post("/item", create.New(d.Logger, d.Items).ServeHTTP)
		r.Put("/item/{itemId}", update.New(d.Logger, d.Items).ServeHTTP)
		r.Delete("/item/{itemId}", remove.New(d.Logger, d.Items).ServeHTTP)
		r.Get("/userinfo", userinfo.New(d.Logger, d.Auth).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
