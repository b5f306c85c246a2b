package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantol/PackForge_Go/internal/domain"
)

type fakePurchaseRepo struct {
	purchases []domain.PackPurchase
	cards     map[int64][]domain.PackCardRecord
	listErr   error
}

func (f *fakePurchaseRepo) GetByKey(_ context.Context, key domain.PurchaseKey) (*domain.PackPurchase, error) {
	for i := range f.purchases {
		if f.purchases[i].Key == key {
			return &f.purchases[i], nil
		}
	}
	return nil, domain.ErrPurchaseNotFound
}

func (f *fakePurchaseRepo) CreateIfAbsent(_ context.Context, p *domain.PackPurchase) (*domain.PackPurchase, bool, error) {
	f.purchases = append(f.purchases, *p)
	return p, true, nil
}

func (f *fakePurchaseRepo) MarkFulfilled(context.Context, int64, string, time.Time, []domain.PackCardRecord) error {
	return nil
}

func (f *fakePurchaseRepo) MarkFailed(context.Context, int64) error { return nil }

func (f *fakePurchaseRepo) CardsByPurchase(_ context.Context, purchaseID int64) ([]domain.PackCardRecord, error) {
	return f.cards[purchaseID], nil
}

func (f *fakePurchaseRepo) ListByWallet(_ context.Context, buyerAddress string) ([]domain.PackPurchase, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.PackPurchase
	for _, p := range f.purchases {
		if p.BuyerAddress == buyerAddress {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestHandleGetPurchases(t *testing.T) {
	userID := "user1"
	fulfilledAt := time.Now().UTC()
	repo := &fakePurchaseRepo{
		purchases: []domain.PackPurchase{
			{
				ID:           1,
				Key:          domain.PurchaseKey{NetworkID: 137, ContractAddress: "0xc0ffee", ExternalPackID: 42},
				BuyerAddress: "0xbuyer",
				UserID:       &userID,
				Status:       domain.PurchaseStatusFulfilled,
				TxRef:        "0xtx",
				CreatedAt:    fulfilledAt.Add(-time.Minute),
				FulfilledAt:  &fulfilledAt,
			},
			{
				ID:           2,
				Key:          domain.PurchaseKey{NetworkID: 137, ContractAddress: "0xc0ffee", ExternalPackID: 43},
				BuyerAddress: "0xbuyer",
				Status:       domain.PurchaseStatusFailed,
				CreatedAt:    fulfilledAt,
			},
		},
		cards: map[int64][]domain.PackCardRecord{
			1: {
				{PurchaseID: 1, TokenRef: "token-1", Key: domain.NewCardKey("Striker A", 2001), Tier: 5, Role: domain.RoleStriker, MintTxRef: "0xmint"},
			},
		},
	}
	h := HandleGetPurchases(repo)

	t.Run("lists purchases with cards", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/pack/purchases?wallet=0xBuyer", nil)
		rec := httptest.NewRecorder()

		h(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp PurchasesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "0xbuyer", resp.Wallet)
		require.Len(t, resp.Purchases, 2)
		assert.Equal(t, int64(42), resp.Purchases[0].ExternalPackID)
		assert.Len(t, resp.Purchases[0].Cards, 1)
		assert.Equal(t, domain.PurchaseStatusFailed, resp.Purchases[1].Status)
		assert.Empty(t, resp.Purchases[1].Cards)
	})

	t.Run("missing wallet param", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/pack/purchases", nil)
		rec := httptest.NewRecorder()

		h(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("repository error", func(t *testing.T) {
		broken := &fakePurchaseRepo{listErr: errors.New("connection refused")}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/pack/purchases?wallet=0xbuyer", nil)
		rec := httptest.NewRecorder()

		HandleGetPurchases(broken)(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

type memWalletRepo struct {
	mu    sync.Mutex
	links map[string]string
}

func (m *memWalletRepo) Link(_ context.Context, link domain.WalletLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.links == nil {
		m.links = make(map[string]string)
	}
	m.links[link.Address] = link.UserID
	return nil
}

func (m *memWalletRepo) Resolve(_ context.Context, address string) (*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.links[address]
	if !ok {
		return nil, nil
	}
	return &userID, nil
}
