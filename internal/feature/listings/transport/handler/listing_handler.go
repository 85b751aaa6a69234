// Package handler はlistingsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mandi_backend/internal/api"
	"mandi_backend/internal/feature/listings/domain"
	"mandi_backend/internal/feature/listings/domain/entity"
	"mandi_backend/internal/feature/listings/transport/http/dto"
	jwtmw "mandi_backend/internal/platform/jwt"
)

// ListingUsecase は出品操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ListingUsecase interface {
	Create(ctx context.Context, listing *entity.Listing) error
	Browse(ctx context.Context, filter entity.Filter, limit int) ([]entity.Listing, error)
	Get(ctx context.Context, id uint) (*entity.Listing, error)
	ListMine(ctx context.Context, farmerID uint) ([]entity.Listing, error)
	Update(ctx context.Context, farmerID uint, listing *entity.Listing) error
	Delete(ctx context.Context, farmerID, id uint) error
	ListPending(ctx context.Context) ([]entity.Listing, error)
	Moderate(ctx context.Context, id uint, status string) error
}

// ListingHandler は出品のHTTPリクエストを処理します。
type ListingHandler struct {
	uc ListingUsecase
}

// NewListingHandler は指定されたusecaseでListingHandlerの新しいインスタンスを生成します。
func NewListingHandler(uc ListingUsecase) *ListingHandler {
	return &ListingHandler{uc: uc}
}

// Create は出品作成APIエンドポイントを処理します。
//
// エンドポイント例:
// POST /api/listings
func (h *ListingHandler) Create(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	listing := &entity.Listing{
		FarmerID:         jwtmw.UserID(c),
		Commodity:        req.Commodity,
		Variety:          req.Variety,
		Region:           req.Region,
		PricePerQuintal:  req.PricePerQuintal,
		QuantityQuintals: req.QuantityQuintals,
		Description:      req.Description,
	}
	if err := h.uc.Create(c.Request.Context(), listing); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toResponse(listing))
}

// Browse は公開中の出品を検索して返します。
//
// エンドポイント例:
// GET /api/listings?commodity=Wheat&region=Punjab&maxPrice=2500&limit=50
func (h *ListingHandler) Browse(c *gin.Context) {
	maxPrice, _ := strconv.ParseFloat(c.Query("maxPrice"), 64)
	limit, _ := strconv.Atoi(c.Query("limit"))

	filter := entity.Filter{
		Commodity: c.Query("commodity"),
		Region:    c.Query("region"),
		MaxPrice:  maxPrice,
	}
	listings, err := h.uc.Browse(c.Request.Context(), filter, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to search listings"})
		return
	}
	c.JSON(http.StatusOK, toResponses(listings))
}

// Get は出品を1件返します。
//
// エンドポイント例:
// GET /api/listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid listing id"})
		return
	}
	listing, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load listing"})
		return
	}
	c.JSON(http.StatusOK, toResponse(listing))
}

// ListMine は農家自身の出品一覧を返します。
//
// エンドポイント例:
// GET /api/my/listings
func (h *ListingHandler) ListMine(c *gin.Context) {
	listings, err := h.uc.ListMine(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load listings"})
		return
	}
	c.JSON(http.StatusOK, toResponses(listings))
}

// Update は所有者による出品更新を処理します。
//
// エンドポイント例:
// PUT /api/listings/:id
func (h *ListingHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid listing id"})
		return
	}
	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	listing := &entity.Listing{
		ID:               id,
		PricePerQuintal:  req.PricePerQuintal,
		QuantityQuintals: req.QuantityQuintals,
		Description:      req.Description,
	}
	if err := h.uc.Update(c.Request.Context(), jwtmw.UserID(c), listing); err != nil {
		writeListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// Delete は所有者による出品削除を処理します。
//
// エンドポイント例:
// DELETE /api/listings/:id
func (h *ListingHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid listing id"})
		return
	}
	if err := h.uc.Delete(c.Request.Context(), jwtmw.UserID(c), id); err != nil {
		writeListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// ListPending は管理者向けにモデレーション待ちの出品一覧を返します。
//
// エンドポイント例:
// GET /api/admin/listings
func (h *ListingHandler) ListPending(c *gin.Context) {
	listings, err := h.uc.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load listings"})
		return
	}
	c.JSON(http.StatusOK, toResponses(listings))
}

// Moderate は管理者による出品の承認・却下を処理します。
//
// エンドポイント例:
// PATCH /api/admin/listings/:id/status
func (h *ListingHandler) Moderate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid listing id"})
		return
	}
	var req dto.ModerateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.uc.Moderate(c.Request.Context(), id, req.Status); err != nil {
		writeListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// parseID はパスパラメータ:idをuintに解析します。
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// writeListingError はドメインエラーをHTTPステータスへマッピングします。
func writeListingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "listing not found"})
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "not the listing owner"})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid status"})
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	}
}

// toResponse はドメインのListingをレスポンスDTOへ変換します。
func toResponse(e *entity.Listing) dto.ListingResponse {
	return dto.ListingResponse{
		ID:               e.ID,
		FarmerID:         e.FarmerID,
		Commodity:        e.Commodity,
		Variety:          e.Variety,
		Region:           e.Region,
		PricePerQuintal:  e.PricePerQuintal,
		QuantityQuintals: e.QuantityQuintals,
		Description:      e.Description,
		Status:           e.Status,
		CreatedAt:        e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toResponses(listings []entity.Listing) []dto.ListingResponse {
	out := make([]dto.ListingResponse, 0, len(listings))
	for i := range listings {
		out = append(out, toResponse(&listings[i]))
	}
	return out
}
