package postgres

// Error message constants for postgres repositories
const (
	ErrMsgInsertLedgerEntry  = "failed to insert ledger entry"
	ErrMsgQueryLedger        = "failed to query ledger"
	ErrMsgScanLedgerEntry    = "failed to scan ledger entry"
	ErrMsgInsertPurchase     = "failed to insert purchase"
	ErrMsgQueryPurchase      = "failed to query purchase"
	ErrMsgScanPurchase       = "failed to scan purchase"
	ErrMsgUpdatePurchase     = "failed to update purchase status"
	ErrMsgInsertPurchaseItem = "failed to insert purchase item"
	ErrMsgQueryPurchaseItems = "failed to query purchase items"
	ErrMsgQueryCursor        = "failed to query sync cursor"
	ErrMsgUpsertCursor       = "failed to upsert sync cursor"
	ErrMsgUpsertWalletLink   = "failed to upsert wallet link"
	ErrMsgQueryWalletLink    = "failed to query wallet link"
)
