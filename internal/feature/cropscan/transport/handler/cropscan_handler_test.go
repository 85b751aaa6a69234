package handler_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"mandi_backend/internal/feature/cropscan/domain/entity"
	"mandi_backend/internal/feature/cropscan/transport/handler"
)

// mockCropScanUsecase はCropScanUsecaseインターフェースのモック実装です。
type mockCropScanUsecase struct {
	DetectProduceFunc func(ctx context.Context, imageData []byte) ([]entity.DetectedProduce, error)
	GetAdvisoryFunc   func(ctx context.Context, commodity string) (*entity.MarketAdvisory, error)
}

func (m *mockCropScanUsecase) DetectProduce(ctx context.Context, imageData []byte) ([]entity.DetectedProduce, error) {
	return m.DetectProduceFunc(ctx, imageData)
}

func (m *mockCropScanUsecase) GetAdvisory(ctx context.Context, commodity string) (*entity.MarketAdvisory, error) {
	return m.GetAdvisoryFunc(ctx, commodity)
}

// createMultipartRequest はテスト用のマルチパートリクエストを生成するヘルパー関数です。
func createMultipartRequest(t *testing.T, fieldName, fileName string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}

	if _, err := io.Copy(part, bytes.NewReader(content)); err != nil {
		t.Fatalf("failed to copy content: %v", err)
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/api/cropscan", body)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req
}

func TestCropScanHandler_DetectProduce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupRequest   func(t *testing.T) *http.Request
		mockFunc       func(ctx context.Context, imageData []byte) ([]entity.DetectedProduce, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: produce detected",
			setupRequest: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "image", "crop.jpg", []byte("fake-image"))
			},
			mockFunc: func(ctx context.Context, imageData []byte) ([]entity.DetectedProduce, error) {
				assert.Equal(t, []byte("fake-image"), imageData)
				return []entity.DetectedProduce{
					{Name: "Tomato", Confidence: 0.92},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"name":"Tomato","confidence":0.92}]`,
		},
		{
			name: "error: no image field",
			setupRequest: func(t *testing.T) *http.Request {
				req, _ := http.NewRequest(http.MethodPost, "/api/cropscan", io.NopCloser(bytes.NewReader(nil)))
				return req
			},
			mockFunc:       nil,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"image file is required"}`,
		},
		{
			name: "error: usecase returns error",
			setupRequest: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "image", "crop.jpg", []byte("fake-image"))
			},
			mockFunc: func(ctx context.Context, imageData []byte) ([]entity.DetectedProduce, error) {
				return nil, errors.New("vision API error")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"produce detection failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCropScanUsecase{DetectProduceFunc: tt.mockFunc}

			h := handler.NewCropScanHandler(mockUC)

			router := gin.New()
			router.POST("/api/cropscan", h.DetectProduce)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, tt.setupRequest(t))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestCropScanHandler_GetAdvisory(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		path           string
		mockFunc       func(ctx context.Context, commodity string) (*entity.MarketAdvisory, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: advisory generated",
			path: "/api/advisory/Tomato",
			mockFunc: func(ctx context.Context, commodity string) (*entity.MarketAdvisory, error) {
				assert.Equal(t, "Tomato", commodity)
				return &entity.MarketAdvisory{
					Commodity: "Tomato",
					Summary:   "Prices are firming up ahead of the festival season.",
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"commodity":"Tomato","summary":"Prices are firming up ahead of the festival season."}`,
		},
		{
			name: "error: usecase returns error",
			path: "/api/advisory/Tomato",
			mockFunc: func(ctx context.Context, commodity string) (*entity.MarketAdvisory, error) {
				return nil, errors.New("gemini API error")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"advisory generation failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCropScanUsecase{GetAdvisoryFunc: tt.mockFunc}

			h := handler.NewCropScanHandler(mockUC)

			router := gin.New()
			router.GET("/api/advisory/:commodity", h.GetAdvisory)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
