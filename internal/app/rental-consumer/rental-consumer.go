// Package rentalconsumer применяет события аренды из RabbitMQ к вещам в базе.
package rentalconsumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/online-rent/internal/config"
	"github.com/magabrotheeeer/online-rent/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/online-rent/internal/lib/sl"
	itemservice "github.com/magabrotheeeer/online-rent/internal/services/item"
	rentalservice "github.com/magabrotheeeer/online-rent/internal/services/rental"
	"github.com/magabrotheeeer/online-rent/internal/storage"
)

// ErrDeliveryClosed возвращается, если брокер закрыл канал доставки
// до отмены контекста.
var ErrDeliveryClosed = errors.New("delivery channel closed by broker")

// App держит соединения с базой и брокером.
type App struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	db      *storage.Storage
	queue   string
	service *rentalservice.Service
	logger  *slog.Logger
}

// New подключается к базе и брокеру и объявляет топологию событий аренды.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "rentalconsumer.New"

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = storage.CheckDatabaseReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.RentalTopology(cfg.RabbitMQ))
	if err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &App{
		conn:    conn,
		ch:      ch,
		db:      db,
		queue:   cfg.Queue,
		service: rentalservice.NewService(itemservice.NewService(db), logger),
		logger:  logger,
	}, nil
}

// Run потребляет очередь до отмены ctx и дожидается начатых обработок.
// Потеря соединения с брокером возвращается как ErrDeliveryClosed.
func (a *App) Run(ctx context.Context) error {
	const op = "rentalconsumer.Run"
	done, err := rabbitmq.ConsumerMessage(ctx, a.ch, a.queue, a.service.Handle, a.logger)
	if err != nil {
		a.close()
		return fmt.Errorf("%s: %w", op, err)
	}
	a.logger.Info("rental consumer started", slog.String("queue", a.queue))

	err = waitConsumer(ctx, done)
	if err != nil {
		a.logger.Error("rental consumer lost broker", sl.Err(err))
	} else {
		a.logger.Info("rental consumer shutting down gracefully")
	}
	a.close()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// waitConsumer ждёт остановки потребителя. Остановка без отмены ctx
// означает, что доставка прервана со стороны брокера.
func waitConsumer(ctx context.Context, done <-chan struct{}) error {
	<-done
	if ctx.Err() != nil {
		return nil
	}
	return ErrDeliveryClosed
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
