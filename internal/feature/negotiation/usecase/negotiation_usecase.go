// Package usecase は価格交渉に関するアプリケーションのユースケースを提供します。
package usecase

import (
	"context"
	"fmt"

	listingentity "mandi_backend/internal/feature/listings/domain/entity"
	"mandi_backend/internal/feature/negotiation/domain"
	"mandi_backend/internal/feature/negotiation/domain/entity"
)

// ThreadRepository は交渉スレッドと提示価格の永続化を抽象化するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ThreadRepository interface {
	CreateThread(ctx context.Context, thread *entity.Thread) error
	FindThreadByID(ctx context.Context, id uint) (*entity.Thread, error)
	ListThreadsByUser(ctx context.Context, userID uint) ([]entity.Thread, error)
	UpdateThread(ctx context.Context, thread *entity.Thread) error
	CreateOffer(ctx context.Context, offer *entity.Offer) error
	ListOffers(ctx context.Context, threadID uint) ([]entity.Offer, error)
}

// ListingReader は交渉対象の出品を参照するためのインターフェースです。
type ListingReader interface {
	FindByID(ctx context.Context, id uint) (*listingentity.Listing, error)
}

// negotiationUsecase はThreadRepositoryとListingReaderを利用して交渉機能を提供します。
type negotiationUsecase struct {
	threads  ThreadRepository
	listings ListingReader
}

// NewNegotiationUsecase は指定されたリポジトリでnegotiationUsecaseを生成します。
func NewNegotiationUsecase(threads ThreadRepository, listings ListingReader) *negotiationUsecase {
	return &negotiationUsecase{threads: threads, listings: listings}
}

// Open は購入者が出品に対して交渉スレッドを開始し、最初の提示価格を記録します。
func (u *negotiationUsecase) Open(ctx context.Context, buyerID, listingID uint, price float64, message string) (*entity.Thread, error) {
	if price <= 0 {
		return nil, fmt.Errorf("offer price must be positive")
	}

	listing, err := u.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.FarmerID == buyerID {
		return nil, domain.ErrOwnListing
	}

	thread := &entity.Thread{
		ListingID: listing.ID,
		BuyerID:   buyerID,
		FarmerID:  listing.FarmerID,
		Status:    entity.ThreadOpen,
	}
	if err := u.threads.CreateThread(ctx, thread); err != nil {
		return nil, err
	}

	offer := &entity.Offer{
		ThreadID:        thread.ID,
		UserID:          buyerID,
		PricePerQuintal: price,
		Message:         message,
	}
	if err := u.threads.CreateOffer(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to record initial offer: %w", err)
	}
	return thread, nil
}

// Counter は当事者（購入者または農家）がオープン中のスレッドに提示価格を追加します。
func (u *negotiationUsecase) Counter(ctx context.Context, userID, threadID uint, price float64, message string) (*entity.Offer, error) {
	if price <= 0 {
		return nil, fmt.Errorf("offer price must be positive")
	}

	thread, err := u.threads.FindThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if userID != thread.BuyerID && userID != thread.FarmerID {
		return nil, domain.ErrNotParticipant
	}
	if thread.Status != entity.ThreadOpen {
		return nil, domain.ErrThreadClosed
	}

	offer := &entity.Offer{
		ThreadID:        thread.ID,
		UserID:          userID,
		PricePerQuintal: price,
		Message:         message,
	}
	if err := u.threads.CreateOffer(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// Resolve は農家がスレッドを受諾または辞退してクローズします。
// 受諾時は直近の提示価格を合意価格として記録します。
func (u *negotiationUsecase) Resolve(ctx context.Context, farmerID, threadID uint, accept bool) (*entity.Thread, error) {
	thread, err := u.threads.FindThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if farmerID != thread.FarmerID {
		return nil, domain.ErrNotParticipant
	}
	if thread.Status != entity.ThreadOpen {
		return nil, domain.ErrThreadClosed
	}

	if accept {
		offers, err := u.threads.ListOffers(ctx, thread.ID)
		if err != nil {
			return nil, err
		}
		if len(offers) == 0 {
			return nil, fmt.Errorf("thread %d has no offers", thread.ID)
		}
		last := offers[len(offers)-1]
		thread.Status = entity.ThreadAccepted
		thread.AgreedPrice = &last.PricePerQuintal
	} else {
		thread.Status = entity.ThreadDeclined
	}

	if err := u.threads.UpdateThread(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

// ListMine は認証ユーザーが当事者であるスレッドの一覧を返します。
func (u *negotiationUsecase) ListMine(ctx context.Context, userID uint) ([]entity.Thread, error) {
	return u.threads.ListThreadsByUser(ctx, userID)
}

// Get はスレッドとその提示価格の履歴を返します。当事者のみ参照できます。
func (u *negotiationUsecase) Get(ctx context.Context, userID, threadID uint) (*entity.Thread, []entity.Offer, error) {
	thread, err := u.threads.FindThreadByID(ctx, threadID)
	if err != nil {
		return nil, nil, err
	}
	if userID != thread.BuyerID && userID != thread.FarmerID {
		return nil, nil, domain.ErrNotParticipant
	}
	offers, err := u.threads.ListOffers(ctx, thread.ID)
	if err != nil {
		return nil, nil, err
	}
	return thread, offers, nil
}
