package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantol/PackForge_Go/internal/domain"
)

func testKey(packID int64) domain.PurchaseKey {
	return domain.PurchaseKey{NetworkID: 137, ContractAddress: "0xc0ffee", ExternalPackID: packID}
}

func TestPurchaseRepositoryCreateIfAbsent(t *testing.T) {
	repo := NewPurchaseRepository()
	ctx := context.Background()

	first, created, err := repo.CreateIfAbsent(ctx, &domain.PackPurchase{
		Key:          testKey(1),
		BuyerAddress: "0xbuyer",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.PurchaseStatusPurchased, first.Status)
	assert.NotZero(t, first.ID)

	// Same key again: returns the stored row, does not insert
	second, created, err := repo.CreateIfAbsent(ctx, &domain.PackPurchase{
		Key:          testKey(1),
		BuyerAddress: "0xother",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "0xbuyer", second.BuyerAddress)
}

func TestPurchaseRepositoryMarkFulfilled(t *testing.T) {
	repo := NewPurchaseRepository()
	ctx := context.Background()

	p, _, err := repo.CreateIfAbsent(ctx, &domain.PackPurchase{Key: testKey(2), BuyerAddress: "0xbuyer"})
	require.NoError(t, err)

	now := time.Now().UTC()
	cards := []domain.PackCardRecord{
		{TokenRef: "token-1", Key: domain.NewCardKey("Okafor", 2001), Tier: 5, Role: domain.RoleStriker},
	}
	require.NoError(t, repo.MarkFulfilled(ctx, p.ID, "0xmint", now, cards))

	stored, err := repo.GetByKey(ctx, testKey(2))
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseStatusFulfilled, stored.Status)
	require.NotNil(t, stored.FulfilledAt)

	records, err := repo.CardsByPurchase(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, p.ID, records[0].PurchaseID)
	assert.Equal(t, "0xmint", records[0].MintTxRef)

	// Terminal states are not overwritten
	require.NoError(t, repo.MarkFailed(ctx, p.ID))
	stored, err = repo.GetByKey(ctx, testKey(2))
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseStatusFulfilled, stored.Status)
}

func TestPurchaseRepositoryListByWallet(t *testing.T) {
	repo := NewPurchaseRepository()
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		_, _, err := repo.CreateIfAbsent(ctx, &domain.PackPurchase{
			Key:          testKey(i),
			BuyerAddress: "0xbuyer",
			CreatedAt:    time.Now().UTC().Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}
	_, _, err := repo.CreateIfAbsent(ctx, &domain.PackPurchase{Key: testKey(9), BuyerAddress: "0xstranger"})
	require.NoError(t, err)

	list, err := repo.ListByWallet(ctx, "0xbuyer")
	require.NoError(t, err)
	require.Len(t, list, 3)
	// Newest first
	assert.Equal(t, int64(3), list[0].Key.ExternalPackID)
	assert.Equal(t, int64(1), list[2].Key.ExternalPackID)
}

func TestCursorRepository(t *testing.T) {
	repo := NewCursorRepository()
	ctx := context.Background()

	got, err := repo.Get(ctx, 137, "0xc0ffee")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Advance(ctx, 137, "0xc0ffee", 50))
	require.NoError(t, repo.Advance(ctx, 137, "0xc0ffee", 40))

	got, err = repo.Get(ctx, 137, "0xc0ffee")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(50), got.Position)
}

func TestWalletRepository(t *testing.T) {
	repo := NewWalletRepository()
	ctx := context.Background()

	userID, err := repo.Resolve(ctx, "0xunknown")
	require.NoError(t, err)
	assert.Nil(t, userID)

	require.NoError(t, repo.Link(ctx, domain.WalletLink{Address: "0xbuyer", UserID: "user1"}))

	userID, err = repo.Resolve(ctx, "0xbuyer")
	require.NoError(t, err)
	require.NotNil(t, userID)
	assert.Equal(t, "user1", *userID)
}
