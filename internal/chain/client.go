package chain

import "context"

// PurchaseEvent is one PurchaseRecorded entry read from the external
// event log. Position is the log position the event was recorded at and
// drives cursor advancement; ExternalPackID is the purchase identity the
// fulfillment pipeline deduplicates on.
type PurchaseEvent struct {
	BuyerAddress   string `json:"buyerAddress"`
	ExternalPackID int64  `json:"externalPackId"`
	Price          string `json:"price"`
	Position       int64  `json:"position"`
	TxRef          string `json:"txRef"`
}

// MintedItem is one ItemMinted entry recovered from a mint receipt
type MintedItem struct {
	TokenRef  string `json:"tokenRef"`
	ToAddress string `json:"toAddress"`
	Identity  string `json:"identity"`
}

// MintReceipt is the confirmed result of a mintBatch call. Minted holds
// one entry per requested identity, in request order.
type MintReceipt struct {
	TxRef  string       `json:"txRef"`
	Minted []MintedItem `json:"minted"`
}

// Client is the external ledger contract the fulfillment listener runs
// against. Implementations must be safe for concurrent use.
type Client interface {
	// Head returns the current last position of the external event log
	Head(ctx context.Context) (int64, error)

	// PurchaseEvents returns the PurchaseRecorded events in positions
	// [from, to], in log order
	PurchaseEvents(ctx context.Context, from, to int64) ([]PurchaseEvent, error)

	// MintBatch records issuance of the given item identities to
	// toAddress on the external ledger and returns the confirmed receipt
	MintBatch(ctx context.Context, toAddress string, identities []string) (*MintReceipt, error)
}
