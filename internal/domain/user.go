package domain

import "time"

// WalletLink maps an external buyer address to a local user. Purchases
// from unlinked wallets are still fulfilled, just unattributed.
type WalletLink struct {
	Address   string
	UserID    string
	CreatedAt time.Time
}
