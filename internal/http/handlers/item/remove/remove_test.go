package remove

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/online-rent/internal/http/middlewarectx"
	"github.com/magabrotheeeer/online-rent/internal/services/item"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Delete(ctx context.Context, userID uuid.UUID, itemID string) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRemoveHandler_ServeHTTP(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		itemID         string
		mockErr        error
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "deleted",
			itemID:         uuid.New().String(),
			wantStatusCode: http.StatusOK,
			wantBody:       `{"success":"Item deleted"}`,
		},
		{
			name:           "on rent",
			itemID:         uuid.New().String(),
			mockErr:        item.ErrItemOnRent,
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       `{"error":"Item is on rent. Try again when it's free."}`,
		},
		{
			name:           "not found",
			itemID:         uuid.New().String(),
			mockErr:        item.ErrItemNotFound,
			wantStatusCode: http.StatusNotFound,
			wantBody:       `{"error":"Item not found"}`,
		},
		{
			name:           "malformed id",
			itemID:         "42",
			mockErr:        item.ErrInvalidItemID,
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       `{"error":"Invalid item id"}`,
		},
		{
			name:           "service failure",
			itemID:         uuid.New().String(),
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Delete", mock.Anything, userID, tt.itemID).Return(tt.mockErr)

			r := chi.NewRouter()
			r.Delete("/item/{itemId}", func(w http.ResponseWriter, req *http.Request) {
				ctx := context.WithValue(req.Context(), middlewarectx.UserID, userID)
				New(newNoopLogger(), svc).ServeHTTP(w, req.WithContext(ctx))
			})

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/item/"+tt.itemID, nil))

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
