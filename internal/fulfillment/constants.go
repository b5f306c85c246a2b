package fulfillment

import "time"

// MintRetryBaseDelay is the first backoff delay between mint attempts;
// it doubles per attempt up to the configured attempt cap.
const MintRetryBaseDelay = 2 * time.Second

// Error message constants
const (
	ErrMsgNoCardsSelected   = "no cards available for purchase"
	ErrContextReadHead      = "failed to read event log head"
	ErrContextReadEvents    = "failed to read purchase events"
	ErrContextAdvanceCursor = "failed to advance sync cursor"
	ErrContextLoadCursor    = "failed to load sync cursor"
	ErrContextSelect        = "failed to select cards"
	ErrContextMint          = "mint call failed"
	ErrContextPersist       = "failed to persist fulfillment"
	ErrContextCreate        = "failed to record purchase"
	ErrContextMarkFailed    = "failed to record failed status"
)

// Log message constants
const (
	LogMsgPollSkipped       = "Poll already in progress, skipping tick"
	LogMsgCursorInitialized = "Sync cursor initialized from head lookback"
	LogMsgNothingToDo       = "Event log head at cursor, nothing to process"
	LogMsgChunkProcessed    = "Chunk processed, cursor advanced"
	LogMsgDuplicateEvent    = "Purchase already reconciled, skipping"
	LogMsgResumingPurchase  = "Resuming unfulfilled purchase"
	LogMsgPurchaseFulfilled = "Purchase fulfilled"
	LogMsgPurchaseFailed    = "Purchase marked failed"
	LogMsgMarkFailedError   = "Failed to record failed status"
	LogMsgWalletUnresolved  = "Buyer wallet resolution failed, fulfilling unattributed"
	LogMsgMintRetry         = "Mint attempt failed, retrying"
)
