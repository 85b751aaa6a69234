// Package dto はordersフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

// CreateOrderRequest は注文作成のリクエストDTOです。
type CreateOrderRequest struct {
	ListingID        uint    `json:"listingId" binding:"required"`
	QuantityQuintals float64 `json:"quantityQuintals" binding:"required,gt=0"`
}

// UpdateOrderStatusRequest は注文ステータス変更のリクエストDTOです。
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse は注文のレスポンスDTOです。
type OrderResponse struct {
	ID               uint    `json:"id"`
	ListingID        uint    `json:"listingId"`
	BuyerID          uint    `json:"buyerId"`
	FarmerID         uint    `json:"farmerId"`
	Commodity        string  `json:"commodity"`
	QuantityQuintals float64 `json:"quantityQuintals"`
	UnitPrice        float64 `json:"unitPrice"`
	TotalPrice       float64 `json:"totalPrice"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"createdAt"`
}
