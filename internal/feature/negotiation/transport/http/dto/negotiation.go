// Package dto はnegotiationフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

// OpenThreadRequest は交渉スレッド開始のリクエストDTOです。
type OpenThreadRequest struct {
	ListingID       uint    `json:"listingId" binding:"required"`
	PricePerQuintal float64 `json:"pricePerQuintal" binding:"required,gt=0"`
	Message         string  `json:"message"`
}

// CounterOfferRequest は提示価格追加のリクエストDTOです。
type CounterOfferRequest struct {
	PricePerQuintal float64 `json:"pricePerQuintal" binding:"required,gt=0"`
	Message         string  `json:"message"`
}

// ResolveThreadRequest はスレッドの受諾・辞退のリクエストDTOです。
type ResolveThreadRequest struct {
	Action string `json:"action" binding:"required,oneof=accept decline"`
}

// OfferResponse は提示価格のレスポンスDTOです。
type OfferResponse struct {
	ID              uint    `json:"id"`
	UserID          uint    `json:"userId"`
	PricePerQuintal float64 `json:"pricePerQuintal"`
	Message         string  `json:"message,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ThreadResponse は交渉スレッドのレスポンスDTOです。
// Offersはスレッド詳細取得時のみ設定されます。
type ThreadResponse struct {
	ID          uint            `json:"id"`
	ListingID   uint            `json:"listingId"`
	BuyerID     uint            `json:"buyerId"`
	FarmerID    uint            `json:"farmerId"`
	Status      string          `json:"status"`
	AgreedPrice *float64        `json:"agreedPrice,omitempty"`
	Offers      []OfferResponse `json:"offers,omitempty"`
}
