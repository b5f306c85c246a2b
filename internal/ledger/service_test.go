package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantol/PackForge_Go/internal/domain"
)

func TestIssueAndIsIssued(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()
	key := domain.NewCardKey("Okafor", 2001)

	issued, err := s.IsIssued(ctx, key)
	require.NoError(t, err)
	assert.False(t, issued)

	require.NoError(t, s.Issue(ctx, key, "user1", 5))

	issued, err = s.IsIssued(ctx, key)
	require.NoError(t, err)
	assert.True(t, issued)
}

func TestIssueRejectsDuplicate(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()
	key := domain.NewCardKey("Okafor", 2001)

	require.NoError(t, s.Issue(ctx, key, "user1", 5))

	err := s.Issue(ctx, key, "user2", 5)

	assert.ErrorIs(t, err, domain.ErrAlreadyIssued)

	// First owner keeps the card
	entries, err := s.EntriesByOwner(ctx, "user1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	entries, err = s.EntriesByOwner(ctx, "user2")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIssueNormalizedIdentityCollides(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	require.NoError(t, s.Issue(ctx, domain.NewCardKey("  Okafor ", 2001), "user1", 5))

	err := s.Issue(ctx, domain.NewCardKey("OKAFOR", 2001), "user2", 5)

	assert.ErrorIs(t, err, domain.ErrAlreadyIssued)
}

// TestIssueConcurrentSingleWinner verifies exactly one of many concurrent
// callers wins a contested identity.
func TestIssueConcurrentSingleWinner(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()
	key := domain.NewCardKey("Okafor", 2001)

	const callers = 32
	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results <- s.Issue(ctx, key, "user", 5)
		}(i)
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrAlreadyIssued):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one caller must win")
	assert.Equal(t, callers-1, conflicts)
}

func TestStats(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	require.NoError(t, s.Issue(ctx, domain.NewCardKey("Okafor", 2001), "user1", 5))
	require.NoError(t, s.Issue(ctx, domain.NewCardKey("Silva", 2001), "user1", 7))

	stats, err := s.Stats(ctx, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Issued)
	assert.Equal(t, 8, stats.Available)
	assert.InDelta(t, 20.0, stats.PercentIssued, 0.001)
}

func TestStatsEmptyCatalog(t *testing.T) {
	s := NewService(NewMemoryRepository())

	stats, err := s.Stats(context.Background(), 0)

	require.NoError(t, err)
	assert.Zero(t, stats.PercentIssued)
}
