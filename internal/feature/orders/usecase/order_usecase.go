// Package usecase は注文操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	listingentity "mandi_backend/internal/feature/listings/domain/entity"
	"mandi_backend/internal/feature/orders/domain"
	"mandi_backend/internal/feature/orders/domain/entity"
)

// OrderRepository は注文データの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uint) (*entity.Order, error)
	ListByBuyer(ctx context.Context, buyerID uint) ([]entity.Order, error)
	ListByFarmer(ctx context.Context, farmerID uint) ([]entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
}

// ListingReader は注文作成時に参照・更新する出品側の操作を抽象化します。
type ListingReader interface {
	FindByID(ctx context.Context, id uint) (*listingentity.Listing, error)
	Update(ctx context.Context, listing *listingentity.Listing) error
}

// orderUsecase は注文操作のユースケースを定義します。
type orderUsecase struct {
	orders   OrderRepository
	listings ListingReader
}

// NewOrderUsecase はorderUsecaseの新しいインスタンスを生成します。
func NewOrderUsecase(orders OrderRepository, listings ListingReader) *orderUsecase {
	return &orderUsecase{orders: orders, listings: listings}
}

// Create は購入者の注文を作成します。出品は公開中（active）かつ
// 要求数量以上の在庫が必要です。注文分の在庫は出品から引き落とされ、
// 在庫が尽きた出品はsoldへ遷移します。
func (u *orderUsecase) Create(ctx context.Context, buyerID, listingID uint, quantity float64) (*entity.Order, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	listing, err := u.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != listingentity.StatusActive || listing.QuantityQuintals < quantity {
		return nil, domain.ErrListingUnavailable
	}

	order := &entity.Order{
		ListingID:        listing.ID,
		BuyerID:          buyerID,
		FarmerID:         listing.FarmerID,
		Commodity:        listing.Commodity,
		QuantityQuintals: quantity,
		UnitPrice:        listing.PricePerQuintal,
		TotalPrice:       listing.PricePerQuintal * quantity,
		Status:           entity.StatusPlaced,
	}
	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	// 在庫を引き落とし、尽きた場合は出品をsoldにする
	listing.QuantityQuintals -= quantity
	if listing.QuantityQuintals <= 0 {
		listing.QuantityQuintals = 0
		listing.Status = listingentity.StatusSold
	}
	if err := u.listings.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to update listing stock: %w", err)
	}

	return order, nil
}

// ListForUser は購入者としての注文と農家としての受注をまとめて返します。
func (u *orderUsecase) ListForUser(ctx context.Context, userID uint) ([]entity.Order, error) {
	bought, err := u.orders.ListByBuyer(ctx, userID)
	if err != nil {
		return nil, err
	}
	sold, err := u.orders.ListByFarmer(ctx, userID)
	if err != nil {
		return nil, err
	}
	return append(bought, sold...), nil
}

// transitions は現在のステータスから遷移可能なステータスを定義します。
var transitions = map[string][]string{
	entity.StatusPlaced:    {entity.StatusConfirmed, entity.StatusCancelled},
	entity.StatusConfirmed: {entity.StatusDelivered},
}

// UpdateStatus は注文のステータス遷移を処理します。
// confirm/deliverは農家のみ、cancelは購入者のみが実行できます。
func (u *orderUsecase) UpdateStatus(ctx context.Context, userID, orderID uint, status string) error {
	order, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	switch status {
	case entity.StatusConfirmed, entity.StatusDelivered:
		if order.FarmerID != userID {
			return domain.ErrNotParticipant
		}
	case entity.StatusCancelled:
		if order.BuyerID != userID {
			return domain.ErrNotParticipant
		}
	default:
		return domain.ErrInvalidTransition
	}

	if !allowed(order.Status, status) {
		return domain.ErrInvalidTransition
	}
	order.Status = status
	return u.orders.Update(ctx, order)
}

// allowed は遷移テーブルに基づき現在のステータスからの遷移可否を返します。
func allowed(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
