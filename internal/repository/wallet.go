package repository

import (
	"context"

	"github.com/vantol/PackForge_Go/internal/domain"
)

// Wallet stores buyer-address to local-user mappings
type Wallet interface {
	// Link records or replaces the mapping for an address
	Link(ctx context.Context, link domain.WalletLink) error

	// Resolve returns the user ID linked to the address, or nil when the
	// address is unmapped. An unmapped address is not an error; purchases
	// from unknown wallets are fulfilled unattributed.
	Resolve(ctx context.Context, address string) (*string, error)
}
