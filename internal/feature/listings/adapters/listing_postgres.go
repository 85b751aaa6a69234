// Package adapters はlistingsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"mandi_backend/internal/feature/listings/domain"
	"mandi_backend/internal/feature/listings/domain/entity"
	"mandi_backend/internal/feature/listings/usecase"
)

type listingPostgres struct {
	db *gorm.DB
}

var _ usecase.ListingRepository = (*listingPostgres)(nil)

func NewListingRepository(db *gorm.DB) *listingPostgres {
	return &listingPostgres{db: db}
}

// ListingModel は出品テーブルのGORMモデルです。
type ListingModel struct {
	ID               uint   `gorm:"primaryKey"`
	FarmerID         uint   `gorm:"not null;index"`
	Commodity        string `gorm:"size:64;not null;index"`
	Variety          string `gorm:"size:64"`
	Region           string `gorm:"size:64;not null;index"`
	PricePerQuintal  float64
	QuantityQuintals float64
	Description      string `gorm:"size:2048"`
	Status           string `gorm:"size:16;not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ListingModel) TableName() string {
	return "listings"
}

func toModel(e *entity.Listing) ListingModel {
	return ListingModel{
		ID:               e.ID,
		FarmerID:         e.FarmerID,
		Commodity:        e.Commodity,
		Variety:          e.Variety,
		Region:           e.Region,
		PricePerQuintal:  e.PricePerQuintal,
		QuantityQuintals: e.QuantityQuintals,
		Description:      e.Description,
		Status:           e.Status,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func toEntity(m ListingModel) entity.Listing {
	return entity.Listing{
		ID:               m.ID,
		FarmerID:         m.FarmerID,
		Commodity:        m.Commodity,
		Variety:          m.Variety,
		Region:           m.Region,
		PricePerQuintal:  m.PricePerQuintal,
		QuantityQuintals: m.QuantityQuintals,
		Description:      m.Description,
		Status:           m.Status,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// Create は出品をデータベースに追加し、採番されたIDをエンティティへ書き戻します。
func (r *listingPostgres) Create(ctx context.Context, listing *entity.Listing) error {
	m := toModel(listing)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	listing.ID = m.ID
	listing.CreatedAt = m.CreatedAt
	listing.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID はIDで出品を取得します。
// 出品が存在しない場合、domain.ErrListingNotFoundを返します。
func (r *listingPostgres) FindByID(ctx context.Context, id uint) (*entity.Listing, error) {
	var m ListingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}

// Search はフィルタ条件に一致する出品を新しい順で返します。
func (r *listingPostgres) Search(ctx context.Context, filter entity.Filter, limit int) ([]entity.Listing, error) {
	q := r.db.WithContext(ctx).Model(&ListingModel{}).Order("created_at DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Commodity != "" {
		q = q.Where("LOWER(commodity) = LOWER(?)", filter.Commodity)
	}
	if filter.Region != "" {
		q = q.Where("region = ?", filter.Region)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price_per_quintal <= ?", filter.MaxPrice)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []ListingModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// ListByFarmer は指定した農家の出品を新しい順で返します。
func (r *listingPostgres) ListByFarmer(ctx context.Context, farmerID uint) ([]entity.Listing, error) {
	var rows []ListingModel
	if err := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Update は出品の全フィールドを保存します。
func (r *listingPostgres) Update(ctx context.Context, listing *entity.Listing) error {
	m := toModel(listing)
	return r.db.WithContext(ctx).Save(&m).Error
}

// Delete はIDで出品を削除します。
func (r *listingPostgres) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&ListingModel{}, id).Error
}
