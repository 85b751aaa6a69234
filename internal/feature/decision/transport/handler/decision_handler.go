// Package handler はdecisionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mandi_backend/internal/api"
	"mandi_backend/internal/feature/decision/domain"
	"mandi_backend/internal/feature/decision/domain/entity"
	"mandi_backend/internal/feature/decision/transport/http/dto"
)

// DecisionUsecase は意思決定支援操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type DecisionUsecase interface {
	GetDecision(ctx context.Context, commodity, lang string) (*entity.Decision, error)
	ListCommodities(ctx context.Context) (commodities, regions []string)
}

// DecisionHandler は意思決定支援のHTTPリクエストを処理します。
type DecisionHandler struct {
	uc DecisionUsecase
}

// NewDecisionHandler は指定されたusecaseでDecisionHandlerの新しいインスタンスを生成します。
func NewDecisionHandler(uc DecisionUsecase) *DecisionHandler {
	return &DecisionHandler{uc: uc}
}

// GetDecision は品目の売り時判定をJSONで返します。
//
// エンドポイント例:
// GET /api/decision?commodity=Wheat&lang=hi
func (h *DecisionHandler) GetDecision(c *gin.Context) {
	commodity := c.Query("commodity")
	lang := c.Query("lang")

	decision, err := h.uc.GetDecision(c.Request.Context(), commodity, lang)
	if err != nil {
		if errors.Is(err, domain.ErrCommodityRequired) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "commodity query parameter is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to compute decision"})
		return
	}

	c.JSON(http.StatusOK, toResponse(decision))
}

// ListCommodities は読み込み済みデータの品目・地域一覧を返します。
//
// エンドポイント例:
// GET /api/decision/commodities
func (h *DecisionHandler) ListCommodities(c *gin.Context) {
	commodities, regions := h.uc.ListCommodities(c.Request.Context())
	c.JSON(http.StatusOK, dto.CommoditiesResponse{
		Commodities: commodities,
		Regions:     regions,
	})
}

// toResponse はドメインのDecisionをレスポンスDTOへ変換します。
func toResponse(d *entity.Decision) dto.DecisionResponse {
	chart := make([]dto.ChartPoint, 0, len(d.Chart))
	for _, p := range d.Chart {
		chart = append(chart, dto.ChartPoint{
			DayLabel:     p.Day,
			Price:        p.Price,
			IsPrediction: p.IsPrediction,
		})
	}
	return dto.DecisionResponse{
		Commodity:           d.Commodity,
		Recommendation:      string(d.Recommendation),
		RecommendationLabel: d.RecommendationLabel,
		Explanation:         d.Explanation,
		Language:            d.Language,
		Translated:          d.Translated,
		PredictedPrice:      d.PredictedPrice,
		ProjectedPrice3Days: d.ProjectedPrice3Days,
		Slope:               d.Slope,
		DemandLevel:         string(d.Demand),
		ChartData:           chart,
	}
}
