package wallet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/logger"
	"github.com/vantol/PackForge_Go/internal/repository"
)

// Service maps buyer addresses to local user IDs. Resolution sits on the
// fulfillment hot path (once per purchase event), so lookups go through
// an expiring LRU in front of the store; negative results are cached too.
type Service interface {
	// Link records or replaces the mapping for an address
	Link(ctx context.Context, address, userID string) error

	// Resolve returns the user ID linked to the address, or nil when the
	// address is unmapped
	Resolve(ctx context.Context, address string) (*string, error)
}

// cached wraps a resolution so an unmapped address is distinguishable
// from a cache miss
type cached struct {
	userID *string
}

type service struct {
	repo  repository.Wallet
	cache *expirable.LRU[string, cached]
}

// NewService creates a wallet service with the default cache sizing
func NewService(repo repository.Wallet) Service {
	return NewServiceWithCache(repo, DefaultCacheSize, DefaultCacheTTL)
}

// NewServiceWithCache creates a wallet service with explicit cache bounds
func NewServiceWithCache(repo repository.Wallet, size int, ttl time.Duration) Service {
	return &service{
		repo:  repo,
		cache: expirable.NewLRU[string, cached](size, nil, ttl),
	}
}

func (s *service) Link(ctx context.Context, address, userID string) error {
	address = normalizeAddress(address)
	if address == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyAddress)
	}
	if userID == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyUserID)
	}

	link := domain.WalletLink{Address: address, UserID: userID, CreatedAt: time.Now().UTC()}
	if err := s.repo.Link(ctx, link); err != nil {
		return fmt.Errorf("%s: %w", ErrContextLink, err)
	}
	s.cache.Remove(address)

	logger.FromContext(ctx).Info(LogMsgWalletLinked, "address", address, "user_id", userID)
	return nil
}

func (s *service) Resolve(ctx context.Context, address string) (*string, error) {
	address = normalizeAddress(address)
	if address == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyAddress)
	}

	if hit, ok := s.cache.Get(address); ok {
		return hit.userID, nil
	}

	userID, err := s.repo.Resolve(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextResolve, err)
	}
	s.cache.Add(address, cached{userID: userID})
	return userID, nil
}

// normalizeAddress lowercases so differently-cased hex forms of the same
// address hit the same mapping
func normalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
