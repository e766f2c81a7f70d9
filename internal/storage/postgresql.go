// Package storage реализует хранилище пользователей и вещей на основе PostgreSQL.
// Все операции с вещами ограничены владельцем, изменение и удаление вещи
// выполняются одним условным запросом, который не трогает вещь в аренде.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrNotFound возвращается, если записи нет или она принадлежит другому пользователю.
	ErrNotFound = errors.New("not found")
	// ErrUserExists возвращается, если имя пользователя уже занято.
	ErrUserExists = errors.New("user already exists")
	// ErrItemOnRent возвращается при попытке изменить вещь в аренде.
	ErrItemOnRent = errors.New("item is on rent")
	// ErrRentStateConflict возвращается, если вещь уже в запрошенном состоянии аренды.
	ErrRentStateConflict = errors.New("rent state conflict")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// CheckDatabaseReady проверяет, что миграции применены.
func CheckDatabaseReady(ctx context.Context, storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'items'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("storage.CheckDatabaseReady: %w", err)
	}
	if !exists {
		return errors.New("storage.CheckDatabaseReady: required table items missing")
	}
	return nil
}
