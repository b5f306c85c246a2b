package repository

import (
	"context"

	"github.com/vantol/PackForge_Go/internal/domain"
)

// Ledger is the durable store behind the uniqueness ledger. It is the
// single source of truth for whether a catalog identity has been issued.
type Ledger interface {
	// IsIssued reports whether the identity already has an owner
	IsIssued(ctx context.Context, key domain.CardKey) (bool, error)

	// Issue atomically records the entry. If an entry for the same key
	// already exists it returns domain.ErrAlreadyIssued and stores nothing.
	// Implementations must make the check-then-insert atomic per key:
	// of N concurrent callers for one key, exactly one succeeds.
	Issue(ctx context.Context, entry domain.LedgerEntry) error

	// EntriesByOwner returns every entry issued to one owner (audit/debug)
	EntriesByOwner(ctx context.Context, ownerID string) ([]domain.LedgerEntry, error)

	// IssuedCount returns the total number of ledger entries
	IssuedCount(ctx context.Context) (int, error)
}
