package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/repository"
)

type cursorKey struct {
	networkID int64
	contract  string
}

type cursorRepository struct {
	mu      sync.Mutex
	cursors map[cursorKey]domain.SyncCursor
}

// NewCursorRepository creates an in-memory sync cursor store
func NewCursorRepository() repository.Cursor {
	return &cursorRepository{cursors: make(map[cursorKey]domain.SyncCursor)}
}

func (r *cursorRepository) Get(_ context.Context, networkID int64, contract string) (*domain.SyncCursor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cursors[cursorKey{networkID, contract}]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *cursorRepository) Advance(_ context.Context, networkID int64, contract string, position int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cursorKey{networkID, contract}
	// Never move backwards, matching the GREATEST guard in the SQL store
	if cur, ok := r.cursors[key]; ok && cur.Position >= position {
		return nil
	}
	r.cursors[key] = domain.SyncCursor{
		NetworkID:       networkID,
		ContractAddress: contract,
		Position:        position,
		UpdatedAt:       time.Now().UTC(),
	}
	return nil
}
