package onlinerent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/online-rent/internal/cache"
	"github.com/magabrotheeeer/online-rent/internal/config"
	"github.com/magabrotheeeer/online-rent/internal/http/middlewarectx"
	"github.com/magabrotheeeer/online-rent/internal/lib/password"
	"github.com/magabrotheeeer/online-rent/internal/lib/sl"
	"github.com/magabrotheeeer/online-rent/internal/migrations"
	authservice "github.com/magabrotheeeer/online-rent/internal/services/auth"
	itemservice "github.com/magabrotheeeer/online-rent/internal/services/item"
	"github.com/magabrotheeeer/online-rent/internal/session"
	"github.com/magabrotheeeer/online-rent/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App — HTTP-сервер со всеми зависимостями.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *storage.Storage
	cache      *cache.Cache
	memory     *session.MemoryStore
	sweepEvery time.Duration
}

// New подключается к базе, применяет миграции, выбирает хранилище сессий
// и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "onlinerent.New"

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{
		logger:     logger,
		db:         db,
		sweepEvery: cfg.SweepInterval,
	}

	var store session.Store
	switch cfg.Driver {
	case config.SessionDriverMemory:
		app.memory = session.NewMemoryStore()
		store = app.memory
	default:
		app.cache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		store = app.cache
	}
	logger.Info("session store selected", slog.String("driver", cfg.Driver))

	sessions := session.NewManager(store, cfg.Session.TTL)
	hasher := password.NewHasher(cfg.Password.Cost)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:   logger,
		Auth:     authservice.NewService(db, hasher, sessions),
		Items:    itemservice.NewService(db),
		Sessions: sessions,
		Cookie: session.Cookie{
			Name:   cfg.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.SecureCookie,
		},
		Metrics:  middlewarectx.NewMetrics(reg),
		Gatherer: reg,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	if a.memory != nil && a.sweepEvery > 0 {
		go a.memory.Run(ctx, a.sweepEvery)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
}
