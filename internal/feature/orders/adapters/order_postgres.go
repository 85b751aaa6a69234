// Package adapters はordersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"mandi_backend/internal/feature/orders/domain"
	"mandi_backend/internal/feature/orders/domain/entity"
	"mandi_backend/internal/feature/orders/usecase"
)

type orderPostgres struct {
	db *gorm.DB
}

var _ usecase.OrderRepository = (*orderPostgres)(nil)

func NewOrderRepository(db *gorm.DB) *orderPostgres {
	return &orderPostgres{db: db}
}

// OrderModel は注文テーブルのGORMモデルです。
type OrderModel struct {
	ID               uint   `gorm:"primaryKey"`
	ListingID        uint   `gorm:"not null;index"`
	BuyerID          uint   `gorm:"not null;index"`
	FarmerID         uint   `gorm:"not null;index"`
	Commodity        string `gorm:"size:64;not null"`
	QuantityQuintals float64
	UnitPrice        float64
	TotalPrice       float64
	Status           string `gorm:"size:16;not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

func toModel(e *entity.Order) OrderModel {
	return OrderModel{
		ID:               e.ID,
		ListingID:        e.ListingID,
		BuyerID:          e.BuyerID,
		FarmerID:         e.FarmerID,
		Commodity:        e.Commodity,
		QuantityQuintals: e.QuantityQuintals,
		UnitPrice:        e.UnitPrice,
		TotalPrice:       e.TotalPrice,
		Status:           e.Status,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func toEntity(m OrderModel) entity.Order {
	return entity.Order{
		ID:               m.ID,
		ListingID:        m.ListingID,
		BuyerID:          m.BuyerID,
		FarmerID:         m.FarmerID,
		Commodity:        m.Commodity,
		QuantityQuintals: m.QuantityQuintals,
		UnitPrice:        m.UnitPrice,
		TotalPrice:       m.TotalPrice,
		Status:           m.Status,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// Create は注文をデータベースに追加し、採番されたIDをエンティティへ書き戻します。
func (r *orderPostgres) Create(ctx context.Context, order *entity.Order) error {
	m := toModel(order)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	order.ID = m.ID
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID はIDで注文を取得します。
// 注文が存在しない場合、domain.ErrOrderNotFoundを返します。
func (r *orderPostgres) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var m OrderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}

// ListByBuyer は購入者の注文を新しい順で返します。
func (r *orderPostgres) ListByBuyer(ctx context.Context, buyerID uint) ([]entity.Order, error) {
	return r.list(ctx, "buyer_id = ?", buyerID)
}

// ListByFarmer は農家の受注を新しい順で返します。
func (r *orderPostgres) ListByFarmer(ctx context.Context, farmerID uint) ([]entity.Order, error) {
	return r.list(ctx, "farmer_id = ?", farmerID)
}

func (r *orderPostgres) list(ctx context.Context, cond string, arg uint) ([]entity.Order, error) {
	var rows []OrderModel
	if err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Order, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Update は注文の全フィールドを保存します。
func (r *orderPostgres) Update(ctx context.Context, order *entity.Order) error {
	m := toModel(order)
	return r.db.WithContext(ctx).Save(&m).Error
}
