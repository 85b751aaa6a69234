package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mandi_backend/internal/feature/negotiation/domain"
	"mandi_backend/internal/feature/negotiation/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&ThreadModel{}, &OfferModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedThread はテスト用の交渉スレッドをデータベースに作成します。
func seedThread(t *testing.T, db *gorm.DB, buyerID, farmerID uint) *entity.Thread {
	t.Helper()

	thread := &entity.Thread{
		ListingID: 1,
		BuyerID:   buyerID,
		FarmerID:  farmerID,
		Status:    entity.ThreadOpen,
	}
	repo := NewThreadPostgres(db)
	require.NoError(t, repo.CreateThread(context.Background(), thread), "failed to seed thread")

	return thread
}

func TestThreadPostgres_CreateAndFindThread(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewThreadPostgres(db)
	ctx := context.Background()

	thread := &entity.Thread{
		ListingID: 3,
		BuyerID:   2,
		FarmerID:  1,
		Status:    entity.ThreadOpen,
	}
	require.NoError(t, repo.CreateThread(ctx, thread))
	assert.NotZero(t, thread.ID, "ID should be written back after create")

	got, err := repo.FindThreadByID(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.ListingID)
	assert.Equal(t, entity.ThreadOpen, got.Status)
	assert.Nil(t, got.AgreedPrice)
}

func TestThreadPostgres_FindThreadByID_NotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewThreadPostgres(db)

	_, err := repo.FindThreadByID(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrThreadNotFound)
}

func TestThreadPostgres_ListThreadsByUser(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewThreadPostgres(db)
	ctx := context.Background()

	seedThread(t, db, 2, 1)
	seedThread(t, db, 3, 1)
	seedThread(t, db, 2, 5)

	// user 2 appears as buyer in two threads
	asBuyer, err := repo.ListThreadsByUser(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, asBuyer, 2)

	// user 1 appears as farmer in two threads
	asFarmer, err := repo.ListThreadsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, asFarmer, 2)

	none, err := repo.ListThreadsByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestThreadPostgres_UpdateThread(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewThreadPostgres(db)
	ctx := context.Background()

	thread := seedThread(t, db, 2, 1)

	agreed := 2150.0
	thread.Status = entity.ThreadAccepted
	thread.AgreedPrice = &agreed
	require.NoError(t, repo.UpdateThread(ctx, thread))

	got, err := repo.FindThreadByID(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ThreadAccepted, got.Status)
	require.NotNil(t, got.AgreedPrice)
	assert.Equal(t, 2150.0, *got.AgreedPrice)
}

func TestThreadPostgres_Offers(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewThreadPostgres(db)
	ctx := context.Background()

	thread := seedThread(t, db, 2, 1)
	other := seedThread(t, db, 3, 1)

	first := &entity.Offer{ThreadID: thread.ID, UserID: 2, PricePerQuintal: 2000, Message: "opening offer"}
	second := &entity.Offer{ThreadID: thread.ID, UserID: 1, PricePerQuintal: 2300}
	stray := &entity.Offer{ThreadID: other.ID, UserID: 3, PricePerQuintal: 1500}
	require.NoError(t, repo.CreateOffer(ctx, first))
	require.NoError(t, repo.CreateOffer(ctx, second))
	require.NoError(t, repo.CreateOffer(ctx, stray))
	assert.NotZero(t, first.ID, "ID should be written back after create")

	offers, err := repo.ListOffers(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, offers, 2)
	// oldest first
	assert.Equal(t, 2000.0, offers[0].PricePerQuintal)
	assert.Equal(t, "opening offer", offers[0].Message)
	assert.Equal(t, 2300.0, offers[1].PricePerQuintal)
}
