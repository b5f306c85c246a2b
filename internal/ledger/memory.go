package ledger

import (
	"context"
	"sync"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/repository"
)

// memoryRepository is a mutex-guarded in-memory ledger store. Used by
// tests and the memory ledger backend; it does not survive restarts.
type memoryRepository struct {
	mu      sync.Mutex
	entries map[domain.CardKey]domain.LedgerEntry
}

// NewMemoryRepository creates an empty in-memory ledger store
func NewMemoryRepository() repository.Ledger {
	return &memoryRepository{
		entries: make(map[domain.CardKey]domain.LedgerEntry),
	}
}

func (r *memoryRepository) IsIssued(_ context.Context, key domain.CardKey) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[key]
	return ok, nil
}

// Issue holds the lock across check and insert, which is what makes the
// check-and-set atomic per key.
func (r *memoryRepository) Issue(_ context.Context, entry domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.Key]; ok {
		return domain.ErrAlreadyIssued
	}
	r.entries[entry.Key] = entry
	return nil
}

func (r *memoryRepository) EntriesByOwner(_ context.Context, ownerID string) ([]domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.LedgerEntry
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryRepository) IssuedCount(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries), nil
}
