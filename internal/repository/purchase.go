package repository

import (
	"context"
	"time"

	"github.com/vantol/PackForge_Go/internal/domain"
)

// Purchase persists on-chain pack purchases and their reconciliation state
type Purchase interface {
	// GetByKey returns the purchase for an external identity, or
	// domain.ErrPurchaseNotFound
	GetByKey(ctx context.Context, key domain.PurchaseKey) (*domain.PackPurchase, error)

	// CreateIfAbsent inserts the purchase in purchased status unless a row
	// for the same external identity already exists. Returns the stored
	// purchase and whether this call created it. Idempotent by design:
	// re-observing an event is a lookup, not a second insert.
	CreateIfAbsent(ctx context.Context, purchase *domain.PackPurchase) (*domain.PackPurchase, bool, error)

	// MarkFulfilled transitions the purchase to fulfilled and stores its
	// card records in the same transaction. A purchase no longer in
	// purchased status is left untouched.
	MarkFulfilled(ctx context.Context, purchaseID int64, mintTxRef string, fulfilledAt time.Time, cards []domain.PackCardRecord) error

	// MarkFailed transitions the purchase to failed. No automatic retry
	// path leads out of failed; administrative action is required.
	MarkFailed(ctx context.Context, purchaseID int64) error

	// CardsByPurchase returns the card records of a fulfilled purchase
	CardsByPurchase(ctx context.Context, purchaseID int64) ([]domain.PackCardRecord, error)

	// ListByWallet returns all purchases made by a buyer address,
	// newest first
	ListByWallet(ctx context.Context, buyerAddress string) ([]domain.PackPurchase, error)
}
