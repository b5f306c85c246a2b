package handler

// Generic HTTP error messages for client responses.
// These intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest    = "Invalid request body"
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	ErrMsgOpenPackFailed     = "Failed to open pack"
	ErrMsgGetPurchasesFailed = "Failed to retrieve purchases"
	ErrMsgGetStatsFailed     = "Failed to retrieve catalog stats"
	ErrMsgGetLedgerFailed    = "Failed to retrieve ledger entries"
	ErrMsgLinkWalletFailed   = "Failed to link wallet"
)

// Success messages
const (
	MsgWalletLinked = "Wallet linked"
)

// Query parameter names
const (
	QueryParamWallet = "wallet"
	QueryParamUserID = "userId"
)
