// Package dto はlistingsフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

// CreateListingRequest は出品作成のリクエストDTOです。
type CreateListingRequest struct {
	Commodity        string  `json:"commodity" binding:"required"`
	Variety          string  `json:"variety"`
	Region           string  `json:"region" binding:"required"`
	PricePerQuintal  float64 `json:"pricePerQuintal" binding:"required,gt=0"`
	QuantityQuintals float64 `json:"quantityQuintals" binding:"required,gt=0"`
	Description      string  `json:"description"`
}

// UpdateListingRequest は出品更新のリクエストDTOです。
type UpdateListingRequest struct {
	PricePerQuintal  float64 `json:"pricePerQuintal" binding:"required,gt=0"`
	QuantityQuintals float64 `json:"quantityQuintals" binding:"required,gt=0"`
	Description      string  `json:"description"`
}

// ModerateListingRequest は管理者による承認・却下のリクエストDTOです。
type ModerateListingRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListingResponse は出品のレスポンスDTOです。
type ListingResponse struct {
	ID               uint    `json:"id"`
	FarmerID         uint    `json:"farmerId"`
	Commodity        string  `json:"commodity"`
	Variety          string  `json:"variety,omitempty"`
	Region           string  `json:"region"`
	PricePerQuintal  float64 `json:"pricePerQuintal"`
	QuantityQuintals float64 `json:"quantityQuintals"`
	Description      string  `json:"description,omitempty"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"createdAt"`
}
