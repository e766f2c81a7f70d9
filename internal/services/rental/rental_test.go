package rental

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/online-rent/internal/models"
	"github.com/magabrotheeeer/online-rent/internal/services/item"
)

type ItemsMock struct {
	mock.Mock
}

func (m *ItemsMock) SetRentState(ctx context.Context, itemID string, rent bool) (*models.Item, error) {
	args := m.Called(ctx, itemID, rent)
	it, _ := args.Get(0).(*models.Item)
	return it, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Handle(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	dbErr := errors.New("db down")

	tests := []struct {
		name    string
		body    string
		setup   func(m *ItemsMock)
		wantErr bool
	}{
		{
			name: "rent",
			body: `{"item_id":"` + id.String() + `","action":"rent"}`,
			setup: func(m *ItemsMock) {
				m.On("SetRentState", ctx, id.String(), true).Return(&models.Item{ID: id, OnRent: true}, nil)
			},
		},
		{
			name: "return",
			body: `{"item_id":"` + id.String() + `","action":"return"}`,
			setup: func(m *ItemsMock) {
				m.On("SetRentState", ctx, id.String(), false).Return(&models.Item{ID: id}, nil)
			},
		},
		{
			name:  "broken json",
			body:  `{"item_id":`,
			setup: func(*ItemsMock) {},
		},
		{
			name:  "unknown action",
			body:  `{"item_id":"` + id.String() + `","action":"steal"}`,
			setup: func(*ItemsMock) {},
		},
		{
			name: "conflict is acknowledged",
			body: `{"item_id":"` + id.String() + `","action":"rent"}`,
			setup: func(m *ItemsMock) {
				m.On("SetRentState", ctx, id.String(), true).Return(nil, item.ErrRentStateConflict)
			},
		},
		{
			name: "missing item is acknowledged",
			body: `{"item_id":"` + id.String() + `","action":"return"}`,
			setup: func(m *ItemsMock) {
				m.On("SetRentState", ctx, id.String(), false).Return(nil, item.ErrItemNotFound)
			},
		},
		{
			name: "infrastructure error is retried",
			body: `{"item_id":"` + id.String() + `","action":"rent"}`,
			setup: func(m *ItemsMock) {
				m.On("SetRentState", ctx, id.String(), true).Return(nil, dbErr)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := new(ItemsMock)
			tt.setup(items)

			err := NewService(items, newNoopLogger()).Handle(ctx, []byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, dbErr)
			} else {
				assert.NoError(t, err)
			}
			items.AssertExpectations(t)
		})
	}
}
