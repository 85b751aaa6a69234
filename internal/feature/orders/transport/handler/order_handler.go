// Package handler はordersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mandi_backend/internal/api"
	listingdomain "mandi_backend/internal/feature/listings/domain"
	"mandi_backend/internal/feature/orders/domain"
	"mandi_backend/internal/feature/orders/domain/entity"
	"mandi_backend/internal/feature/orders/transport/http/dto"
	jwtmw "mandi_backend/internal/platform/jwt"
)

// OrderUsecase は注文操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type OrderUsecase interface {
	Create(ctx context.Context, buyerID, listingID uint, quantity float64) (*entity.Order, error)
	ListForUser(ctx context.Context, userID uint) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, userID, orderID uint, status string) error
}

// OrderHandler は注文のHTTPリクエストを処理します。
type OrderHandler struct {
	uc OrderUsecase
}

// NewOrderHandler は指定されたusecaseでOrderHandlerの新しいインスタンスを生成します。
func NewOrderHandler(uc OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create は注文作成APIエンドポイントを処理します。
//
// エンドポイント例:
// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	order, err := h.uc.Create(c.Request.Context(), jwtmw.UserID(c), req.ListingID, req.QuantityQuintals)
	if err != nil {
		switch {
		case errors.Is(err, listingdomain.ErrListingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "listing not found"})
		case errors.Is(err, domain.ErrListingUnavailable):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "listing is not available"})
		default:
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, toResponse(order))
}

// ListMine は認証ユーザーに関係する注文の一覧を返します。
//
// エンドポイント例:
// GET /api/my/orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.uc.ListForUser(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load orders"})
		return
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, out)
}

// UpdateStatus は注文ステータス変更APIエンドポイントを処理します。
//
// エンドポイント例:
// PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid order id"})
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.uc.UpdateStatus(c.Request.Context(), jwtmw.UserID(c), uint(id), req.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "order not found"})
		case errors.Is(err, domain.ErrNotParticipant):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "not a participant of this order"})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid status transition"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update order"})
		}
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// toResponse はドメインのOrderをレスポンスDTOへ変換します。
func toResponse(e *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:               e.ID,
		ListingID:        e.ListingID,
		BuyerID:          e.BuyerID,
		FarmerID:         e.FarmerID,
		Commodity:        e.Commodity,
		QuantityQuintals: e.QuantityQuintals,
		UnitPrice:        e.UnitPrice,
		TotalPrice:       e.TotalPrice,
		Status:           e.Status,
		CreatedAt:        e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
