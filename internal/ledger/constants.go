package ledger

// Error context strings
const (
	ErrContextAvailabilityCheck = "failed to check availability"
	ErrContextIssueFailed       = "failed to issue card"
	ErrContextOwnerQuery        = "failed to query entries by owner"
	ErrContextStatsQuery        = "failed to query issued count"
)

// Log messages
const (
	LogMsgCardIssued = "Card issued"
)
