// Package auth содержит бизнес-логику регистрации, входа и выхода пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/online-rent/internal/models"
	"github.com/magabrotheeeer/online-rent/internal/storage"
)

var (
	// ErrUserExists: имя пользователя уже занято.
	ErrUserExists = errors.New("username already exists")
	// ErrUserNotFound: пользователя с таким именем нет.
	ErrUserNotFound = errors.New("username not found")
	// ErrInvalidCredentials: пароль не совпадает.
	ErrInvalidCredentials = errors.New("password incorrect")
)

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	CreateUser(ctx context.Context, userName, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, userName string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// PasswordHasher хэширует и проверяет пароли.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// SessionManager создаёт и уничтожает сессии.
type SessionManager interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Destroy(ctx context.Context, token string) error
}

// Service отвечает за регистрацию, вход и выход.
type Service struct {
	users    UserRepository
	hasher   PasswordHasher
	sessions SessionManager
}

// NewService создаёт новый экземпляр Service.
func NewService(users UserRepository, hasher PasswordHasher, sessions SessionManager) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
	}
}

// Signup регистрирует пользователя и сразу открывает для него сессию.
// Возвращает токен сессии.
func (s *Service) Signup(ctx context.Context, creds models.Credentials) (string, error) {
	const op = "services.auth.Signup"

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.CreateUser(ctx, creds.UserName, hash)
	if errors.Is(err, storage.ErrUserExists) {
		return "", fmt.Errorf("%s: %w", op, ErrUserExists)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Login проверяет пароль и открывает новую сессию.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (string, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByUsername(ctx, creds.UserName)
	if errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !s.hasher.Verify(creds.Password, user.PasswordHash) {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Logout закрывает сессию. Пустой или неизвестный токен не является ошибкой.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return fmt.Errorf("services.auth.Logout: %w", err)
	}
	return nil
}

// CurrentUser возвращает пользователя по идентификатору из сессии.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	const op = "services.auth.CurrentUser"

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
