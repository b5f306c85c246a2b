package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgAlreadyIssued    = "card already issued"
	ErrMsgCatalogExhausted = "catalog exhausted"
	ErrMsgCardNotFound     = "card not found"
	ErrMsgPurchaseNotFound = "purchase not found"
	ErrMsgUserNotFound     = "user not found"
	ErrMsgInvalidInput     = "invalid input"
	ErrMsgExternalCall     = "external call failed"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: ...", domain.ErrXxx) for additional context.
var (
	// ErrAlreadyIssued is returned by the ledger when a card identity has
	// already been granted. Expected under concurrency; callers retry the
	// lottery selection rather than treating it as fatal.
	ErrAlreadyIssued = errors.New(ErrMsgAlreadyIssued)

	// ErrCatalogExhausted means no card remains in any fallback tier or role.
	// Surfaced as a short pack on the direct path and a failed purchase on
	// the listener path.
	ErrCatalogExhausted = errors.New(ErrMsgCatalogExhausted)

	ErrCardNotFound     = errors.New(ErrMsgCardNotFound)
	ErrPurchaseNotFound = errors.New(ErrMsgPurchaseNotFound)
	ErrUserNotFound     = errors.New(ErrMsgUserNotFound)
	ErrInvalidInput     = errors.New(ErrMsgInvalidInput)

	// ErrExternalCall wraps mint or event-log failures from the chain gateway
	ErrExternalCall = errors.New(ErrMsgExternalCall)
)
