package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	listingdomain "mandi_backend/internal/feature/listings/domain"
	"mandi_backend/internal/feature/orders/domain"
	"mandi_backend/internal/feature/orders/domain/entity"
	jwtmw "mandi_backend/internal/platform/jwt"
)

// mockOrderUsecase はOrderUsecaseインターフェースのモック実装です。
type mockOrderUsecase struct {
	CreateFunc       func(ctx context.Context, buyerID, listingID uint, quantity float64) (*entity.Order, error)
	ListForUserFunc  func(ctx context.Context, userID uint) ([]entity.Order, error)
	UpdateStatusFunc func(ctx context.Context, userID, orderID uint, status string) error
}

func (m *mockOrderUsecase) Create(ctx context.Context, buyerID, listingID uint, quantity float64) (*entity.Order, error) {
	return m.CreateFunc(ctx, buyerID, listingID, quantity)
}

func (m *mockOrderUsecase) ListForUser(ctx context.Context, userID uint) ([]entity.Order, error) {
	return m.ListForUserFunc(ctx, userID)
}

func (m *mockOrderUsecase) UpdateStatus(ctx context.Context, userID, orderID uint, status string) error {
	return m.UpdateStatusFunc(ctx, userID, orderID, status)
}

// asUser は認証済みユーザーIDをコンテキストへ注入するテスト用ミドルウェアです。
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, id)
		c.Next()
	}
}

func TestOrderHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    string
		mockFunc       func(ctx context.Context, buyerID, listingID uint, quantity float64) (*entity.Order, error)
		expectedStatus int
	}{
		{
			name:        "success: order placed with price snapshot",
			requestBody: `{"listingId":5,"quantityQuintals":4}`,
			mockFunc: func(ctx context.Context, buyerID, listingID uint, quantity float64) (*entity.Order, error) {
				assert.Equal(t, uint(2), buyerID)
				assert.Equal(t, uint(5), listingID)
				assert.Equal(t, 4.0, quantity)
				return &entity.Order{
					ID: 1, ListingID: 5, BuyerID: 2, FarmerID: 1,
					Commodity: "Tomato", QuantityQuintals: 4,
					UnitPrice: 2200, TotalPrice: 8800,
					Status:    entity.StatusPlaced,
					CreatedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
				}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "error: missing quantity",
			requestBody:    `{"listingId":5}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "error: listing missing",
			requestBody: `{"listingId":99,"quantityQuintals":4}`,
			mockFunc: func(ctx context.Context, buyerID, listingID uint, quantity float64) (*entity.Order, error) {
				return nil, listingdomain.ErrListingNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "error: listing sold out",
			requestBody: `{"listingId":5,"quantityQuintals":4}`,
			mockFunc: func(ctx context.Context, buyerID, listingID uint, quantity float64) (*entity.Order, error) {
				return nil, domain.ErrListingUnavailable
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewOrderHandler(&mockOrderUsecase{CreateFunc: tt.mockFunc})

			router := gin.New()
			router.POST("/api/orders", asUser(2), h.Create)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				assert.Contains(t, w.Body.String(), `"totalPrice":8800`)
				assert.Contains(t, w.Body.String(), `"createdAt":"2026-08-20T10:00:00Z"`)
			}
		})
	}
}

func TestOrderHandler_ListMine(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUC := &mockOrderUsecase{
		ListForUserFunc: func(ctx context.Context, userID uint) ([]entity.Order, error) {
			assert.Equal(t, uint(2), userID)
			return []entity.Order{
				{ID: 1, BuyerID: 2, Commodity: "Tomato", Status: entity.StatusPlaced},
			}, nil
		},
	}
	h := NewOrderHandler(mockUC)

	router := gin.New()
	router.GET("/api/my/orders", asUser(2), h.ListMine)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/my/orders", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"placed"`)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		path           string
		requestBody    string
		mockFunc       func(ctx context.Context, userID, orderID uint, status string) error
		expectedStatus int
	}{
		{
			name:        "success: farmer confirms",
			path:        "/api/orders/1/status",
			requestBody: `{"status":"confirmed"}`,
			mockFunc: func(ctx context.Context, userID, orderID uint, status string) error {
				assert.Equal(t, uint(2), userID)
				assert.Equal(t, uint(1), orderID)
				assert.Equal(t, entity.StatusConfirmed, status)
				return nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "error: non-numeric id",
			path:           "/api/orders/abc/status",
			requestBody:    `{"status":"confirmed"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "error: order missing",
			path:        "/api/orders/99/status",
			requestBody: `{"status":"confirmed"}`,
			mockFunc: func(ctx context.Context, userID, orderID uint, status string) error {
				return domain.ErrOrderNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "error: outsider",
			path:        "/api/orders/1/status",
			requestBody: `{"status":"confirmed"}`,
			mockFunc: func(ctx context.Context, userID, orderID uint, status string) error {
				return domain.ErrNotParticipant
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:        "error: illegal transition",
			path:        "/api/orders/1/status",
			requestBody: `{"status":"placed"}`,
			mockFunc: func(ctx context.Context, userID, orderID uint, status string) error {
				return domain.ErrInvalidTransition
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewOrderHandler(&mockOrderUsecase{UpdateStatusFunc: tt.mockFunc})

			router := gin.New()
			router.PATCH("/api/orders/:id/status", asUser(2), h.UpdateStatus)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPatch, tt.path, strings.NewReader(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
