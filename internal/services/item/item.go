// Package item содержит бизнес-логику работы с вещами пользователя.
//
// Все операции выполняются от имени владельца: чужая вещь неотличима
// от несуществующей. Вещь в аренде нельзя изменить или удалить.
package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/online-rent/internal/models"
	"github.com/magabrotheeeer/online-rent/internal/storage"
)

var (
	// ErrItemNotFound — вещи нет или она принадлежит другому пользователю.
	ErrItemNotFound = errors.New("item not found")
	// ErrItemOnRent — вещь в аренде.
	ErrItemOnRent = errors.New("item is on rent")
	// ErrInvalidItemID — идентификатор вещи не является UUID.
	ErrInvalidItemID = errors.New("invalid item id")
	// ErrRentStateConflict — вещь уже в запрошенном состоянии аренды.
	ErrRentStateConflict = errors.New("rent state conflict")
)

// Repository описывает контракт хранилища вещей.
type Repository interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]models.Item, error)
	CreateItem(ctx context.Context, item models.Item) (*models.Item, error)
	FindItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Item, error)
	UpdateItem(ctx context.Context, item models.Item) (*models.Item, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error
	SetItemRent(ctx context.Context, itemID uuid.UUID, rent bool) (*models.Item, error)
}

// Service реализует операции над вещами.
type Service struct {
	repo Repository
}

// NewService создаёт новый экземпляр Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List возвращает все вещи пользователя. Пустой список не является ошибкой.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]models.Item, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("services.item.List: %w", err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// Create сохраняет новую вещь. Владелец берётся из сессии, флаг аренды сбрасывается.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req models.DummyItem) (*models.Item, error) {
	const op = "services.item.Create"

	it := req.ToItem()
	it.UserID = userID
	it.OnRent = false

	created, err := s.repo.CreateItem(ctx, it)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// Update перезаписывает название, цену, дату производства и стоимость вещи.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, itemID string, req models.DummyItem) (*models.Item, error) {
	const op = "services.item.Update"

	id, err := parseItemID(itemID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	current, err := s.repo.FindItem(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}
	if current.OnRent {
		return nil, fmt.Errorf("%s: %w", op, ErrItemOnRent)
	}

	it := req.ToItem()
	it.ID = current.ID
	it.UserID = current.UserID
	// флаг мог смениться после чтения, окончательную проверку делает хранилище
	updated, err := s.repo.UpdateItem(ctx, it)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}
	return updated, nil
}

// Delete удаляет вещь, если она не в аренде.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, itemID string) error {
	const op = "services.item.Delete"

	id, err := parseItemID(itemID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	current, err := s.repo.FindItem(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}
	if current.OnRent {
		return fmt.Errorf("%s: %w", op, ErrItemOnRent)
	}
	if err = s.repo.DeleteItem(ctx, userID, id); err != nil {
		return fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}
	return nil
}

// SetRentState переводит вещь в аренду или возвращает из неё.
// Вызывается обработчиком событий аренды, владелец не проверяется.
func (s *Service) SetRentState(ctx context.Context, itemID string, rent bool) (*models.Item, error) {
	const op = "services.item.SetRentState"

	id, err := parseItemID(itemID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	it, err := s.repo.SetItemRent(ctx, id, rent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}
	return it, nil
}

func parseItemID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidItemID, raw)
	}
	return id, nil
}

func mapStorageErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrItemNotFound
	case errors.Is(err, storage.ErrItemOnRent):
		return ErrItemOnRent
	case errors.Is(err, storage.ErrRentStateConflict):
		return ErrRentStateConflict
	default:
		return err
	}
}
