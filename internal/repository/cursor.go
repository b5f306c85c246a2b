package repository

import (
	"context"

	"github.com/vantol/PackForge_Go/internal/domain"
)

// Cursor persists the fulfillment listener's read position per
// (network, contract) pair.
type Cursor interface {
	// Get returns the cursor, or nil when no cursor has been persisted yet
	Get(ctx context.Context, networkID int64, contract string) (*domain.SyncCursor, error)

	// Advance persists position for the pair. Implementations must keep the
	// stored value monotonically non-decreasing: a position below the stored
	// one is ignored, not an error.
	Advance(ctx context.Context, networkID int64, contract string, position int64) error
}
