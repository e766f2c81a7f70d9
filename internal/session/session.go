// Package session управляет сессиями пользователей: выдаёт непрозрачные токены,
// хранит соответствие токен -> пользователь с ограниченным временем жизни
// и уничтожает сессии при выходе.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/online-rent/internal/models"
)

// ErrNotFound возвращается, если сессии нет, токен пустой или срок истёк.
var ErrNotFound = errors.New("session not found")

const (
	keyPrefix  = "session:"
	tokenBytes = 32
)

// Store описывает хранилище ключ-значение с временем жизни записей.
// Реализации: cache.Cache (Redis) и MemoryStore.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Manager создаёт, проверяет и уничтожает сессии.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewManager создаёт Manager поверх store с временем жизни сессии ttl.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Create открывает сессию для пользователя и возвращает её токен.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	const op = "session.Create"
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	now := m.now()
	s := models.Session{
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err = m.store.Set(ctx, keyPrefix+token, s, m.ttl); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Resolve возвращает пользователя, которому принадлежит токен.
func (m *Manager) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	const op = "session.Resolve"
	if token == "" {
		return uuid.Nil, ErrNotFound
	}

	var s models.Session
	found, err := m.store.Get(ctx, keyPrefix+token, &s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found || s.UserID == uuid.Nil {
		return uuid.Nil, ErrNotFound
	}
	if s.Expired(m.now()) {
		_ = m.store.Invalidate(ctx, keyPrefix+token)
		return uuid.Nil, ErrNotFound
	}
	return s.UserID, nil
}

// Destroy удаляет сессию. Повторный вызов и неизвестный токен ошибкой не являются.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	const op = "session.Destroy"
	if token == "" {
		return nil
	}
	if err := m.store.Invalidate(ctx, keyPrefix+token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
