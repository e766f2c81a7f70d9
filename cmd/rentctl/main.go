// Команда rentctl публикует событие аренды: переводит вещь в аренду
// или возвращает её.
//
//	rentctl -item <uuid> -action rent|return
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/online-rent/internal/config"
	"github.com/magabrotheeeer/online-rent/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/online-rent/internal/lib/sl"
	"github.com/magabrotheeeer/online-rent/internal/models"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run возвращает код завершения, чтобы отложенные Close успели выполниться.
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("rentctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	itemID := fs.String("item", "", "item id (uuid)")
	action := fs.String("action", models.RentalActionRent, "rent or return")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	event := models.RentalEvent{ItemID: *itemID, Action: *action}
	if err := validator.New().Struct(event); err != nil {
		_, _ = fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "cannot read config: %v\n", err)
		return exitError
	}
	logger := sl.SetupLogger(cfg.Env, stderr)

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", sl.Err(err))
		return exitError
	}
	defer func() {
		_ = conn.Close()
	}()

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.RentalTopology(cfg.RabbitMQ))
	if err != nil {
		logger.Error("failed to setup RabbitMQ channel", sl.Err(err))
		return exitError
	}
	defer func() {
		_ = ch.Close()
	}()

	if err = rabbitmq.PublishMessage(ch, cfg.Exchange, cfg.RoutingKey, event); err != nil {
		logger.Error("failed to publish rental event", sl.Err(err))
		return exitError
	}
	logger.Info("rental event published",
		slog.String("item_id", event.ItemID),
		slog.String("action", event.Action))
	return exitOK
}
