package wallet

import "time"

// Resolution cache sizing. Buyer addresses repeat heavily within a poll
// window, so a small cache absorbs most lookups.
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 5 * time.Minute
)

const (
	ErrMsgEmptyAddress  = "wallet address is empty"
	ErrMsgEmptyUserID   = "user id is empty"
	ErrContextLink      = "failed to link wallet"
	ErrContextResolve   = "failed to resolve wallet"
	LogMsgWalletLinked  = "Wallet linked"
)
