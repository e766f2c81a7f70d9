package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/online-rent/internal/models"
)

const itemColumns = `id, name, rent_price, m_date, actual_cost, rent, user_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var it models.Item
	if err := row.Scan(&it.ID, &it.Name, &it.RentPrice, &it.MDate,
		&it.ActualCost, &it.OnRent, &it.UserID); err != nil {
		return nil, err
	}
	return &it, nil
}

// ListItems возвращает все вещи пользователя.
func (s *Storage) ListItems(ctx context.Context, userID uuid.UUID) ([]models.Item, error) {
	const op = "storage.ListItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + itemColumns + `
			  FROM items
			  WHERE user_id = $1
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateItem сохраняет вещь с новым идентификатором.
func (s *Storage) CreateItem(ctx context.Context, item models.Item) (*models.Item, error) {
	const op = "storage.CreateItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	item.ID = uuid.New()
	query := `INSERT INTO items (id, name, rent_price, m_date, actual_cost, rent, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + itemColumns
	created, err := scanItem(s.DB.QueryRowContext(ctx, query,
		item.ID, item.Name, item.RentPrice, item.MDate, item.ActualCost, item.OnRent, item.UserID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// FindItem возвращает вещь, если она существует и принадлежит пользователю.
func (s *Storage) FindItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Item, error) {
	const op = "storage.FindItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + itemColumns + `
			  FROM items
			  WHERE id = $1 AND user_id = $2`
	it, err := scanItem(s.DB.QueryRowContext(ctx, query, itemID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return it, nil
}

// UpdateItem перезаписывает изменяемые поля вещи, только если она не в аренде.
// Проверка флага и запись выполняются одним запросом.
func (s *Storage) UpdateItem(ctx context.Context, item models.Item) (*models.Item, error) {
	const op = "storage.UpdateItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE items
			  SET name = $1, rent_price = $2, m_date = $3, actual_cost = $4
			  WHERE id = $5 AND user_id = $6 AND rent = FALSE
			  RETURNING ` + itemColumns
	updated, err := scanItem(s.DB.QueryRowContext(ctx, query,
		item.Name, item.RentPrice, item.MDate, item.ActualCost, item.ID, item.UserID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, s.whyUnchanged(ctx, item.UserID, item.ID))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteItem удаляет вещь, только если она не в аренде.
func (s *Storage) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	const op = "storage.DeleteItem"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM items WHERE id = $1 AND user_id = $2 AND rent = FALSE`
	result, err := s.DB.ExecContext(ctx, query, itemID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, s.whyUnchanged(ctx, userID, itemID))
	}
	return nil
}

// SetItemRent переключает флаг аренды. Переход возможен только из
// противоположного состояния, иначе возвращается ErrRentStateConflict.
func (s *Storage) SetItemRent(ctx context.Context, itemID uuid.UUID, rent bool) (*models.Item, error) {
	const op = "storage.SetItemRent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE items
			  SET rent = $1
			  WHERE id = $2 AND rent = $3
			  RETURNING ` + itemColumns
	updated, err := scanItem(s.DB.QueryRowContext(ctx, query, rent, itemID, !rent))
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		err = s.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, itemID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !exists {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, ErrRentStateConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// whyUnchanged объясняет, почему условный запрос не затронул строку:
// вещи нет у пользователя или она в аренде.
func (s *Storage) whyUnchanged(ctx context.Context, userID, itemID uuid.UUID) error {
	var rent bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT rent FROM items WHERE id = $1 AND user_id = $2`, itemID, userID).Scan(&rent)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if rent {
		return ErrItemOnRent
	}
	// строка появилась или освободилась между запросами
	return ErrNotFound
}
