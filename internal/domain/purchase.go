package domain

import "time"

// PurchaseStatus is the fulfillment state of an on-chain pack purchase.
// Transitions are one-directional: purchased -> fulfilled or purchased -> failed.
// A failed purchase requires administrative retry; there is no automatic path out.
type PurchaseStatus string

const (
	PurchaseStatusPurchased PurchaseStatus = "purchased"
	PurchaseStatusFulfilled PurchaseStatus = "fulfilled"
	PurchaseStatusFailed    PurchaseStatus = "failed"
)

// PurchaseKey is the external identity of a pack purchase
type PurchaseKey struct {
	NetworkID       int64
	ContractAddress string
	ExternalPackID  int64
}

// PackPurchase is the durable reconciliation record for one on-chain
// pack purchase event.
type PackPurchase struct {
	ID           int64
	Key          PurchaseKey
	BuyerAddress string
	UserID       *string // nil until the buyer address maps to a local user
	Status       PurchaseStatus
	TxRef        string
	CreatedAt    time.Time
	FulfilledAt  *time.Time
}

// PackCardRecord maps one issued card inside a fulfilled purchase to its
// on-chain token. Created only when the purchase transitions to fulfilled.
type PackCardRecord struct {
	PurchaseID int64
	TokenRef   string
	Key        CardKey
	Tier       int
	Role       Role
	MintTxRef  string
}

// SyncCursor marks how far the fulfillment listener has read the external
// event log for one (network, contract) pair. Monotonically non-decreasing.
type SyncCursor struct {
	NetworkID       int64
	ContractAddress string
	Position        int64
	UpdatedAt       time.Time
}
