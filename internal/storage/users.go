package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/online-rent/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его.
func (s *Storage) CreateUser(ctx context.Context, userName, passwordHash string) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u := &models.User{
		ID:           uuid.New(),
		UserName:     userName,
		PasswordHash: passwordHash,
	}
	query := `INSERT INTO users (id, user_name, password_hash)
			  VALUES ($1, $2, $3)`
	if _, err := s.DB.ExecContext(ctx, query, u.ID, u.UserName, u.PasswordHash); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, userName string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	query := `SELECT id, user_name, password_hash
			  FROM users
			  WHERE user_name = $1`
	return s.getUser(ctx, op, query, userName)
}

// GetUserByID возвращает пользователя по идентификатору.
func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.GetUserByID"
	query := `SELECT id, user_name, password_hash
			  FROM users
			  WHERE id = $1`
	return s.getUser(ctx, op, query, id)
}

func (s *Storage) getUser(ctx context.Context, op, query string, arg any) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u := &models.User{}
	err := s.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.UserName, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
