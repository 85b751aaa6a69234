// Package handler はnegotiationフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mandi_backend/internal/api"
	listingdomain "mandi_backend/internal/feature/listings/domain"
	"mandi_backend/internal/feature/negotiation/domain"
	"mandi_backend/internal/feature/negotiation/domain/entity"
	"mandi_backend/internal/feature/negotiation/transport/http/dto"
	jwtmw "mandi_backend/internal/platform/jwt"
)

// NegotiationUsecase は価格交渉操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type NegotiationUsecase interface {
	Open(ctx context.Context, buyerID, listingID uint, price float64, message string) (*entity.Thread, error)
	Counter(ctx context.Context, userID, threadID uint, price float64, message string) (*entity.Offer, error)
	Resolve(ctx context.Context, farmerID, threadID uint, accept bool) (*entity.Thread, error)
	ListMine(ctx context.Context, userID uint) ([]entity.Thread, error)
	Get(ctx context.Context, userID, threadID uint) (*entity.Thread, []entity.Offer, error)
}

// NegotiationHandler は交渉のHTTPリクエストを処理します。
type NegotiationHandler struct {
	uc NegotiationUsecase
}

// NewNegotiationHandler は指定されたusecaseでNegotiationHandlerを生成します。
func NewNegotiationHandler(uc NegotiationUsecase) *NegotiationHandler {
	return &NegotiationHandler{uc: uc}
}

// Open は交渉スレッド開始APIエンドポイントを処理します。
//
// エンドポイント例:
// POST /api/negotiations
func (h *NegotiationHandler) Open(c *gin.Context) {
	var req dto.OpenThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	thread, err := h.uc.Open(c.Request.Context(), jwtmw.UserID(c), req.ListingID, req.PricePerQuintal, req.Message)
	if err != nil {
		writeThreadError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toThreadResponse(thread, nil))
}

// Counter は提示価格追加APIエンドポイントを処理します。
//
// エンドポイント例:
// POST /api/negotiations/:id/offers
func (h *NegotiationHandler) Counter(c *gin.Context) {
	id, ok := parseThreadID(c)
	if !ok {
		return
	}
	var req dto.CounterOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	offer, err := h.uc.Counter(c.Request.Context(), jwtmw.UserID(c), id, req.PricePerQuintal, req.Message)
	if err != nil {
		writeThreadError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOfferResponse(offer))
}

// Resolve はスレッドの受諾・辞退APIエンドポイントを処理します。
//
// エンドポイント例:
// PATCH /api/negotiations/:id
func (h *NegotiationHandler) Resolve(c *gin.Context) {
	id, ok := parseThreadID(c)
	if !ok {
		return
	}
	var req dto.ResolveThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	thread, err := h.uc.Resolve(c.Request.Context(), jwtmw.UserID(c), id, req.Action == "accept")
	if err != nil {
		writeThreadError(c, err)
		return
	}
	c.JSON(http.StatusOK, toThreadResponse(thread, nil))
}

// ListMine は認証ユーザーが当事者であるスレッドの一覧を返します。
//
// エンドポイント例:
// GET /api/my/negotiations
func (h *NegotiationHandler) ListMine(c *gin.Context) {
	threads, err := h.uc.ListMine(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load negotiations"})
		return
	}
	out := make([]dto.ThreadResponse, 0, len(threads))
	for i := range threads {
		out = append(out, toThreadResponse(&threads[i], nil))
	}
	c.JSON(http.StatusOK, out)
}

// Get はスレッド詳細（提示価格の履歴つき）を返します。
//
// エンドポイント例:
// GET /api/negotiations/:id
func (h *NegotiationHandler) Get(c *gin.Context) {
	id, ok := parseThreadID(c)
	if !ok {
		return
	}
	thread, offers, err := h.uc.Get(c.Request.Context(), jwtmw.UserID(c), id)
	if err != nil {
		writeThreadError(c, err)
		return
	}
	c.JSON(http.StatusOK, toThreadResponse(thread, offers))
}

// parseThreadID はパスパラメータのスレッドIDを解析します。
func parseThreadID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid thread id"})
		return 0, false
	}
	return uint(id), true
}

// writeThreadError はドメインエラーをHTTPステータスへ対応付けます。
func writeThreadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrThreadNotFound), errors.Is(err, listingdomain.ErrListingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotParticipant):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrThreadClosed), errors.Is(err, domain.ErrOwnListing):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	}
}

// toThreadResponse はドメインのThreadをレスポンスDTOへ変換します。
func toThreadResponse(t *entity.Thread, offers []entity.Offer) dto.ThreadResponse {
	resp := dto.ThreadResponse{
		ID:          t.ID,
		ListingID:   t.ListingID,
		BuyerID:     t.BuyerID,
		FarmerID:    t.FarmerID,
		Status:      t.Status,
		AgreedPrice: t.AgreedPrice,
	}
	for i := range offers {
		resp.Offers = append(resp.Offers, toOfferResponse(&offers[i]))
	}
	return resp
}

// toOfferResponse はドメインのOfferをレスポンスDTOへ変換します。
func toOfferResponse(o *entity.Offer) dto.OfferResponse {
	return dto.OfferResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		PricePerQuintal: o.PricePerQuintal,
		Message:         o.Message,
		CreatedAt:       o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
