package wallet

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/repository"
)

// memWalletRepo is a mutex-guarded map store that counts Resolve calls so
// tests can observe cache hits
type memWalletRepo struct {
	mu       sync.Mutex
	links    map[string]string
	resolves int
}

func newMemWalletRepo() *memWalletRepo {
	return &memWalletRepo{links: make(map[string]string)}
}

func (m *memWalletRepo) Link(_ context.Context, link domain.WalletLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[link.Address] = link.UserID
	return nil
}

func (m *memWalletRepo) Resolve(_ context.Context, address string) (*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolves++
	userID, ok := m.links[address]
	if !ok {
		return nil, nil
	}
	return &userID, nil
}

var _ repository.Wallet = (*memWalletRepo)(nil)

func TestLinkAndResolve(t *testing.T) {
	repo := newMemWalletRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Link(ctx, "0xAbCd", "user1"))

	got, err := svc.Resolve(ctx, "0xabcd")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user1", *got)

	// Mixed case resolves to the same mapping
	got, err = svc.Resolve(ctx, "  0xABCD ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user1", *got)
}

func TestResolveUnmappedIsNil(t *testing.T) {
	svc := NewService(newMemWalletRepo())

	got, err := svc.Resolve(context.Background(), "0xnobody")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveCachesLookups(t *testing.T) {
	repo := newMemWalletRepo()
	svc := NewServiceWithCache(repo, 8, time.Minute)
	ctx := context.Background()
	require.NoError(t, svc.Link(ctx, "0xabcd", "user1"))

	for i := 0; i < 5; i++ {
		_, err := svc.Resolve(ctx, "0xabcd")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, repo.resolves)
}

func TestResolveCachesNegative(t *testing.T) {
	repo := newMemWalletRepo()
	svc := NewServiceWithCache(repo, 8, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := svc.Resolve(ctx, "0xnobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	}

	assert.Equal(t, 1, repo.resolves)
}

func TestLinkInvalidatesCache(t *testing.T) {
	repo := newMemWalletRepo()
	svc := NewServiceWithCache(repo, 8, time.Minute)
	ctx := context.Background()

	got, err := svc.Resolve(ctx, "0xabcd")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, svc.Link(ctx, "0xabcd", "user1"))

	got, err = svc.Resolve(ctx, "0xabcd")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user1", *got)
}

func TestInvalidInput(t *testing.T) {
	svc := NewService(newMemWalletRepo())
	ctx := context.Background()

	assert.ErrorIs(t, svc.Link(ctx, "", "user1"), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Link(ctx, "0xabcd", ""), domain.ErrInvalidInput)

	_, err := svc.Resolve(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
