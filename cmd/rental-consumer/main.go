package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	rentalconsumer "github.com/magabrotheeeer/online-rent/internal/app/rental-consumer"
	"github.com/magabrotheeeer/online-rent/internal/config"
	"github.com/magabrotheeeer/online-rent/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.SetupLogger(cfg.Env, os.Stdout)
	logger.Info("starting rental-consumer", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := rentalconsumer.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize rental-consumer", sl.Err(err))
		os.Exit(1)
	}
	if err := app.Run(ctx); err != nil {
		logger.Error("rental-consumer stopped with error", sl.Err(err))
		os.Exit(1)
	}
}
