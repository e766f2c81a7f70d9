package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/online-rent/internal/lib/password"
	"github.com/magabrotheeeer/online-rent/internal/models"
	"github.com/magabrotheeeer/online-rent/internal/services/auth"
	"github.com/magabrotheeeer/online-rent/internal/storage"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, userName, passwordHash string) (*models.User, error) {
	args := m.Called(ctx, userName, passwordHash)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, userName string) (*models.User, error) {
	args := m.Called(ctx, userName)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

// Мок для SessionManager
type SessionMock struct {
	mock.Mock
}

func (m *SessionMock) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *SessionMock) Destroy(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func newService(users *UserRepoMock, sessions *SessionMock) *auth.Service {
	return auth.NewService(users, password.NewHasher(4), sessions)
}

func TestService_Signup(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	dbErr := errors.New("db down")

	tests := []struct {
		name       string
		setupMocks func(u *UserRepoMock, s *SessionMock)
		wantToken  string
		wantErr    error
	}{
		{
			name: "successful signup",
			setupMocks: func(u *UserRepoMock, s *SessionMock) {
				u.On("CreateUser", ctx, "alice", mock.MatchedBy(func(h string) bool {
					return h != "secret" && password.CompareHash(h, "secret") == nil
				})).Return(&models.User{ID: userID, UserName: "alice"}, nil)
				s.On("Create", ctx, userID).Return("tok", nil)
			},
			wantToken: "tok",
		},
		{
			name: "duplicate username",
			setupMocks: func(u *UserRepoMock, _ *SessionMock) {
				u.On("CreateUser", ctx, "alice", mock.Anything).
					Return(nil, fmt.Errorf("storage.CreateUser: %w", storage.ErrUserExists))
			},
			wantErr: auth.ErrUserExists,
		},
		{
			name: "repository failure",
			setupMocks: func(u *UserRepoMock, _ *SessionMock) {
				u.On("CreateUser", ctx, "alice", mock.Anything).Return(nil, dbErr)
			},
			wantErr: dbErr,
		},
		{
			name: "session failure",
			setupMocks: func(u *UserRepoMock, s *SessionMock) {
				u.On("CreateUser", ctx, "alice", mock.Anything).
					Return(&models.User{ID: userID, UserName: "alice"}, nil)
				s.On("Create", ctx, userID).Return("", dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			sessions := new(SessionMock)
			tt.setupMocks(users, sessions)

			token, err := newService(users, sessions).Signup(ctx, models.Credentials{UserName: "alice", Password: "secret"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := password.NewHasher(4).Hash("secret")
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), UserName: "alice", PasswordHash: hash}

	tests := []struct {
		name       string
		password   string
		setupMocks func(u *UserRepoMock, s *SessionMock)
		wantErr    error
	}{
		{
			name:     "successful login",
			password: "secret",
			setupMocks: func(u *UserRepoMock, s *SessionMock) {
				u.On("GetUserByUsername", ctx, "alice").Return(user, nil)
				s.On("Create", ctx, user.ID).Return("tok", nil)
			},
		},
		{
			name:     "unknown user",
			password: "secret",
			setupMocks: func(u *UserRepoMock, _ *SessionMock) {
				u.On("GetUserByUsername", ctx, "alice").
					Return(nil, fmt.Errorf("storage.GetUserByUsername: %w", storage.ErrNotFound))
			},
			wantErr: auth.ErrUserNotFound,
		},
		{
			name:     "wrong password",
			password: "nope",
			setupMocks: func(u *UserRepoMock, _ *SessionMock) {
				u.On("GetUserByUsername", ctx, "alice").Return(user, nil)
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			sessions := new(SessionMock)
			tt.setupMocks(users, sessions)

			token, err := newService(users, sessions).Login(ctx, models.Credentials{UserName: "alice", Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "tok", token)
			}
			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	users := new(UserRepoMock)
	sessions := new(SessionMock)
	svc := newService(users, sessions)

	// пустой токен не доходит до менеджера сессий
	require.NoError(t, svc.Logout(ctx, ""))

	sessions.On("Destroy", ctx, "tok").Return(nil).Once()
	require.NoError(t, svc.Logout(ctx, "tok"))

	sessions.On("Destroy", ctx, "bad").Return(errors.New("redis down")).Once()
	assert.Error(t, svc.Logout(ctx, "bad"))
	sessions.AssertExpectations(t)
}

func TestService_CurrentUser(t *testing.T) {
	ctx := context.Background()
	users := new(UserRepoMock)
	svc := newService(users, new(SessionMock))
	id := uuid.New()

	users.On("GetUserByID", ctx, id).Return(&models.User{ID: id, UserName: "alice"}, nil).Once()
	u, err := svc.CurrentUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.UserName)

	users.On("GetUserByID", ctx, id).Return(nil, storage.ErrNotFound).Once()
	_, err = svc.CurrentUser(ctx, id)
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
