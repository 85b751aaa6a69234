// Package handler はcropscanフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mandi_backend/internal/api"
	"mandi_backend/internal/feature/cropscan/domain/entity"
)

// CropScanUsecase は農産物検出・市況アドバイスのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CropScanUsecase interface {
	DetectProduce(ctx context.Context, imageData []byte) ([]entity.DetectedProduce, error)
	GetAdvisory(ctx context.Context, commodity string) (*entity.MarketAdvisory, error)
}

// CropScanHandler は農産物検出・市況アドバイスのHTTPリクエストを処理します。
type CropScanHandler struct {
	uc CropScanUsecase
}

// NewCropScanHandler はCropScanHandlerの新しいインスタンスを生成します。
func NewCropScanHandler(uc CropScanUsecase) *CropScanHandler {
	return &CropScanHandler{uc: uc}
}

// DetectProduce は画像をアップロードして農産物を検出します。
//
// エンドポイント: POST /api/cropscan
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *CropScanHandler) DetectProduce(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("image file missing from request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded image", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded image", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("failed to read image data", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}

	produce, err := h.uc.DetectProduce(c.Request.Context(), imageData)
	if err != nil {
		slog.Error("produce detection failed", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "produce detection failed"})
		return
	}

	out := make([]api.DetectedProduceResponse, 0, len(produce))
	for _, p := range produce {
		out = append(out, api.DetectedProduceResponse{
			Name:       p.Name,
			Confidence: p.Confidence,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetAdvisory は商品の市況アドバイスを生成します。
//
// エンドポイント: GET /api/advisory/:commodity
func (h *CropScanHandler) GetAdvisory(c *gin.Context) {
	commodity := c.Param("commodity")

	advisory, err := h.uc.GetAdvisory(c.Request.Context(), commodity)
	if err != nil {
		slog.Error("advisory generation failed", "error", err, "commodity", commodity)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "advisory generation failed"})
		return
	}

	c.JSON(http.StatusOK, api.MarketAdvisoryResponse{
		Commodity: advisory.Commodity,
		Summary:   advisory.Summary,
	})
}
