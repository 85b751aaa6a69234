// Package adapters はnegotiationフィーチャーの永続化実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mandi_backend/internal/feature/negotiation/domain"
	"mandi_backend/internal/feature/negotiation/domain/entity"
	"mandi_backend/internal/feature/negotiation/usecase"
)

// ThreadModel は交渉スレッドのGORMモデルです。
type ThreadModel struct {
	ID          uint `gorm:"primaryKey"`
	ListingID   uint `gorm:"index;not null"`
	BuyerID     uint `gorm:"index;not null"`
	FarmerID    uint `gorm:"index;not null"`
	Status      string `gorm:"size:16;not null"`
	AgreedPrice *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName はThreadModelのテーブル名を指定します。
func (ThreadModel) TableName() string { return "negotiation_threads" }

// OfferModel はスレッド内の提示価格のGORMモデルです。
type OfferModel struct {
	ID              uint `gorm:"primaryKey"`
	ThreadID        uint `gorm:"index;not null"`
	UserID          uint `gorm:"not null"`
	PricePerQuintal float64 `gorm:"not null"`
	Message         string  `gorm:"size:512"`
	CreatedAt       time.Time
}

// TableName はOfferModelのテーブル名を指定します。
func (OfferModel) TableName() string { return "negotiation_offers" }

// threadPostgres はGORMを利用したThreadRepositoryの実装です。
type threadPostgres struct {
	db *gorm.DB
}

// インターフェースを満たしているかコンパイル時に検証します。
var _ usecase.ThreadRepository = (*threadPostgres)(nil)

// NewThreadPostgres は指定されたDBでThreadRepository実装を生成します。
func NewThreadPostgres(db *gorm.DB) *threadPostgres {
	return &threadPostgres{db: db}
}

// CreateThread は交渉スレッドを保存し、採番されたIDをエンティティへ書き戻します。
func (r *threadPostgres) CreateThread(ctx context.Context, thread *entity.Thread) error {
	m := toThreadModel(thread)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create negotiation thread: %w", err)
	}
	thread.ID = m.ID
	thread.CreatedAt = m.CreatedAt
	thread.UpdatedAt = m.UpdatedAt
	return nil
}

// FindThreadByID はIDでスレッドを検索します。
func (r *threadPostgres) FindThreadByID(ctx context.Context, id uint) (*entity.Thread, error) {
	var m ThreadModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrThreadNotFound
		}
		return nil, fmt.Errorf("failed to find negotiation thread: %w", err)
	}
	return toThreadEntity(&m), nil
}

// ListThreadsByUser はユーザーが購入者または農家として関わるスレッドを返します。
func (r *threadPostgres) ListThreadsByUser(ctx context.Context, userID uint) ([]entity.Thread, error) {
	var models []ThreadModel
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR farmer_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list negotiation threads: %w", err)
	}
	threads := make([]entity.Thread, 0, len(models))
	for i := range models {
		threads = append(threads, *toThreadEntity(&models[i]))
	}
	return threads, nil
}

// UpdateThread はスレッドの状態と合意価格を更新します。
func (r *threadPostgres) UpdateThread(ctx context.Context, thread *entity.Thread) error {
	if err := r.db.WithContext(ctx).Save(toThreadModel(thread)).Error; err != nil {
		return fmt.Errorf("failed to update negotiation thread: %w", err)
	}
	return nil
}

// CreateOffer は提示価格を保存し、採番されたIDをエンティティへ書き戻します。
func (r *threadPostgres) CreateOffer(ctx context.Context, offer *entity.Offer) error {
	m := &OfferModel{
		ThreadID:        offer.ThreadID,
		UserID:          offer.UserID,
		PricePerQuintal: offer.PricePerQuintal,
		Message:         offer.Message,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	offer.ID = m.ID
	offer.CreatedAt = m.CreatedAt
	return nil
}

// ListOffers はスレッド内の提示価格を古い順に返します。
func (r *threadPostgres) ListOffers(ctx context.Context, threadID uint) ([]entity.Offer, error) {
	var models []OfferModel
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	offers := make([]entity.Offer, 0, len(models))
	for _, m := range models {
		offers = append(offers, entity.Offer{
			ID:              m.ID,
			ThreadID:        m.ThreadID,
			UserID:          m.UserID,
			PricePerQuintal: m.PricePerQuintal,
			Message:         m.Message,
			CreatedAt:       m.CreatedAt,
		})
	}
	return offers, nil
}

// toThreadModel はドメインのThreadをGORMモデルへ変換します。
func toThreadModel(e *entity.Thread) *ThreadModel {
	return &ThreadModel{
		ID:          e.ID,
		ListingID:   e.ListingID,
		BuyerID:     e.BuyerID,
		FarmerID:    e.FarmerID,
		Status:      e.Status,
		AgreedPrice: e.AgreedPrice,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// toThreadEntity はGORMモデルをドメインのThreadへ変換します。
func toThreadEntity(m *ThreadModel) *entity.Thread {
	return &entity.Thread{
		ID:          m.ID,
		ListingID:   m.ListingID,
		BuyerID:     m.BuyerID,
		FarmerID:    m.FarmerID,
		Status:      m.Status,
		AgreedPrice: m.AgreedPrice,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
