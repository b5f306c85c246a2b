package chain

import "time"

// Gateway JSON-RPC methods
const (
	MethodHead           = "cards_head"
	MethodPurchaseEvents = "cards_getPurchaseEvents"
	MethodMintBatch      = "cards_mintBatch"
)

// HTTP client defaults
const (
	DefaultRequestTimeout = 30 * time.Second
	MaxResponseBytes      = 4 << 20
	ContentTypeJSON       = "application/json"
)

const (
	ErrMsgEmptyRPCURL     = "rpc url is empty"
	ErrMsgRequestFailed   = "rpc request failed"
	ErrMsgDecodeResponse  = "failed to decode rpc response"
	ErrMsgRPCError        = "rpc error"
	ErrMsgEmptyReceipt    = "mint receipt missing transaction reference"
	ErrMsgNoIdentities    = "mint batch requires at least one identity"
	ErrMsgInvalidRange    = "invalid event range"
	ErrMsgUnexpectedCode  = "unexpected http status"
)
