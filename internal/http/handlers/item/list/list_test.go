package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/online-rent/internal/http/middlewarectx"
	"github.com/magabrotheeeer/online-rent/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) List(ctx context.Context, userID uuid.UUID) ([]models.Item, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]models.Item)
	return items, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestListHandler_ServeHTTP(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.MustParse("0b6d1f36-8c1e-4b1b-9d8e-5a8b1f4e2c10")

	tests := []struct {
		name           string
		items          []models.Item
		mockErr        error
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "empty list",
			items:          []models.Item{},
			wantStatusCode: http.StatusCreated,
			wantBody:       `[]`,
		},
		{
			name: "one item",
			items: []models.Item{{
				ID: itemID, Name: "drill", RentPrice: 5, MDate: 10120, ActualCost: 100, UserID: userID,
			}},
			wantStatusCode: http.StatusCreated,
			wantBody: `[{"id":"` + itemID.String() + `","name":"drill","rent_price":5,"mDate":10120,` +
				`"actual_cost":100,"rent":false,"userId":"` + userID.String() + `"}]`,
		},
		{
			name:           "service failure",
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("List", mock.Anything, userID).Return(tt.items, tt.mockErr)

			req := httptest.NewRequest(http.MethodGet, "/item", nil)
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, userID))
			rr := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}
