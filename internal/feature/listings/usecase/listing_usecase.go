// Package usecase は出品操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"mandi_backend/internal/feature/listings/domain"
	"mandi_backend/internal/feature/listings/domain/entity"
)

const (
	// DefaultBrowseLimit は一覧取得のデフォルト返却件数です。
	DefaultBrowseLimit = 50
	// MaxBrowseLimit は一覧取得の最大返却件数です。
	MaxBrowseLimit = 200
)

// ListingRepository は出品データの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	FindByID(ctx context.Context, id uint) (*entity.Listing, error)
	Search(ctx context.Context, filter entity.Filter, limit int) ([]entity.Listing, error)
	ListByFarmer(ctx context.Context, farmerID uint) ([]entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id uint) error
}

// listingUsecase は出品操作のユースケースを定義します。
type listingUsecase struct {
	listings ListingRepository
}

// NewListingUsecase はlistingUsecaseの新しいインスタンスを生成します。
func NewListingUsecase(listings ListingRepository) *listingUsecase {
	return &listingUsecase{listings: listings}
}

// Create は新しい出品を登録します。ステータスは常にpendingで開始し、
// 管理者の承認後に購入者へ公開されます。
func (u *listingUsecase) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.Commodity == "" {
		return fmt.Errorf("commodity is required")
	}
	if listing.PricePerQuintal <= 0 {
		return fmt.Errorf("price per quintal must be positive")
	}
	if listing.QuantityQuintals <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	listing.Status = entity.StatusPending
	return u.listings.Create(ctx, listing)
}

// Browse は公開中（active）の出品をフィルタ条件で検索します。
func (u *listingUsecase) Browse(ctx context.Context, filter entity.Filter, limit int) ([]entity.Listing, error) {
	if limit <= 0 || limit > MaxBrowseLimit {
		limit = DefaultBrowseLimit
	}
	// 購入者に見えるのは承認済みの出品のみ
	filter.Status = entity.StatusActive
	return u.listings.Search(ctx, filter, limit)
}

// Get はIDで出品を1件取得します。
func (u *listingUsecase) Get(ctx context.Context, id uint) (*entity.Listing, error) {
	return u.listings.FindByID(ctx, id)
}

// ListMine は農家自身の出品（全ステータス）を返します。
func (u *listingUsecase) ListMine(ctx context.Context, farmerID uint) ([]entity.Listing, error) {
	return u.listings.ListByFarmer(ctx, farmerID)
}

// Update は所有者本人による出品内容の更新を処理します。
// 価格・数量・説明のみ変更可能で、ステータスは変更されません。
func (u *listingUsecase) Update(ctx context.Context, farmerID uint, listing *entity.Listing) error {
	current, err := u.listings.FindByID(ctx, listing.ID)
	if err != nil {
		return err
	}
	if current.FarmerID != farmerID {
		return domain.ErrNotOwner
	}
	if listing.PricePerQuintal <= 0 || listing.QuantityQuintals <= 0 {
		return fmt.Errorf("price and quantity must be positive")
	}

	current.PricePerQuintal = listing.PricePerQuintal
	current.QuantityQuintals = listing.QuantityQuintals
	current.Description = listing.Description
	return u.listings.Update(ctx, current)
}

// Delete は所有者本人による出品の削除を処理します。
func (u *listingUsecase) Delete(ctx context.Context, farmerID, id uint) error {
	current, err := u.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current.FarmerID != farmerID {
		return domain.ErrNotOwner
	}
	return u.listings.Delete(ctx, id)
}

// ListPending は管理者のモデレーション対象（pending）の出品を返します。
func (u *listingUsecase) ListPending(ctx context.Context) ([]entity.Listing, error) {
	return u.listings.Search(ctx, entity.Filter{Status: entity.StatusPending}, MaxBrowseLimit)
}

// Moderate は管理者による出品の承認・却下を処理します。
// pendingの出品のみactiveまたはrejectedへ遷移できます。
func (u *listingUsecase) Moderate(ctx context.Context, id uint, status string) error {
	if status != entity.StatusActive && status != entity.StatusRejected {
		return domain.ErrInvalidStatus
	}
	current, err := u.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != entity.StatusPending {
		return domain.ErrInvalidStatus
	}
	current.Status = status
	return u.listings.Update(ctx, current)
}
