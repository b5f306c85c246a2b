// Package memory provides mutex-guarded in-memory repository
// implementations for local development without a database. Nothing
// survives a process restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/repository"
)

type purchaseRepository struct {
	mu     sync.Mutex
	nextID int64
	byKey  map[domain.PurchaseKey]*domain.PackPurchase
	cards  map[int64][]domain.PackCardRecord
}

// NewPurchaseRepository creates an in-memory purchase store
func NewPurchaseRepository() repository.Purchase {
	return &purchaseRepository{
		byKey: make(map[domain.PurchaseKey]*domain.PackPurchase),
		cards: make(map[int64][]domain.PackCardRecord),
	}
}

func (r *purchaseRepository) GetByKey(_ context.Context, key domain.PurchaseKey) (*domain.PackPurchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byKey[key]
	if !ok {
		return nil, domain.ErrPurchaseNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *purchaseRepository) CreateIfAbsent(_ context.Context, purchase *domain.PackPurchase) (*domain.PackPurchase, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byKey[purchase.Key]; ok {
		cp := *existing
		return &cp, false, nil
	}

	r.nextID++
	stored := *purchase
	stored.ID = r.nextID
	stored.Status = domain.PurchaseStatusPurchased
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.byKey[purchase.Key] = &stored

	cp := stored
	return &cp, true, nil
}

func (r *purchaseRepository) MarkFulfilled(_ context.Context, purchaseID int64, mintTxRef string, fulfilledAt time.Time, cards []domain.PackCardRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findByID(purchaseID)
	if p == nil || p.Status != domain.PurchaseStatusPurchased {
		return nil
	}

	p.Status = domain.PurchaseStatusFulfilled
	p.FulfilledAt = &fulfilledAt

	records := make([]domain.PackCardRecord, len(cards))
	copy(records, cards)
	for i := range records {
		records[i].PurchaseID = purchaseID
		records[i].MintTxRef = mintTxRef
	}
	r.cards[purchaseID] = records
	return nil
}

func (r *purchaseRepository) MarkFailed(_ context.Context, purchaseID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findByID(purchaseID)
	if p == nil || p.Status != domain.PurchaseStatusPurchased {
		return nil
	}
	p.Status = domain.PurchaseStatusFailed
	return nil
}

func (r *purchaseRepository) CardsByPurchase(_ context.Context, purchaseID int64) ([]domain.PackCardRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.cards[purchaseID]
	out := make([]domain.PackCardRecord, len(records))
	copy(out, records)
	return out, nil
}

func (r *purchaseRepository) ListByWallet(_ context.Context, buyerAddress string) ([]domain.PackPurchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.PackPurchase
	for _, p := range r.byKey {
		if p.BuyerAddress == buyerAddress {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *purchaseRepository) findByID(purchaseID int64) *domain.PackPurchase {
	for _, p := range r.byKey {
		if p.ID == purchaseID {
			return p
		}
	}
	return nil
}
