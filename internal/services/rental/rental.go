// Package rental обрабатывает события внешнего процесса аренды,
// который переводит вещи в аренду и возвращает их.
package rental

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/online-rent/internal/lib/sl"
	"github.com/magabrotheeeer/online-rent/internal/models"
	"github.com/magabrotheeeer/online-rent/internal/services/item"
)

// StateChanger меняет флаг аренды вещи.
type StateChanger interface {
	SetRentState(ctx context.Context, itemID string, rent bool) (*models.Item, error)
}

// Service разбирает сообщения RentalEvent и применяет их.
type Service struct {
	items    StateChanger
	log      *slog.Logger
	validate *validator.Validate
}

// NewService создаёт новый экземпляр Service.
func NewService(items StateChanger, log *slog.Logger) *Service {
	return &Service{
		items:    items,
		log:      log,
		validate: validator.New(),
	}
}

// Handle применяет одно сообщение. Ошибка возвращается только тогда,
// когда сообщение стоит доставить повторно. Некорректные события,
// неизвестные вещи и повторные переходы логируются и пропускаются.
func (s *Service) Handle(ctx context.Context, body []byte) error {
	const op = "services.rental.Handle"
	log := s.log.With(slog.String("op", op))

	var event models.RentalEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to unmarshal rental event", sl.Err(err))
		return nil
	}
	if err := s.validate.Struct(event); err != nil {
		log.Error("invalid rental event", sl.Err(err), slog.Any("event", event))
		return nil
	}

	it, err := s.items.SetRentState(ctx, event.ItemID, event.Rented())
	switch {
	case err == nil:
		log.Info("rent state changed",
			slog.String("item_id", it.ID.String()),
			slog.Bool("rent", it.OnRent))
		return nil
	case errors.Is(err, item.ErrItemNotFound),
		errors.Is(err, item.ErrRentStateConflict),
		errors.Is(err, item.ErrInvalidItemID):
		log.Warn("rental event skipped",
			slog.String("item_id", event.ItemID),
			slog.String("action", event.Action),
			sl.Err(err))
		return nil
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
