package lottery

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vantol/PackForge_Go/internal/catalog"
	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/ledger"
	"github.com/vantol/PackForge_Go/internal/metrics"
)

// Service draws available cards from the catalog. A draw never returns a
// card the ledger reported issued at check time; the residual race between
// check and commit is resolved by the ledger's atomic Issue, which callers
// retry on domain.ErrAlreadyIssued.
type Service interface {
	// DrawTier rolls a rarity tier from the weight table
	DrawTier() int

	// DrawInTier returns an available card of the given tier, falling back
	// outward through adjacent tiers (rarer side first) when the tier is
	// exhausted. Returns domain.ErrCatalogExhausted when nothing remains.
	DrawInTier(ctx context.Context, tier int) (domain.Card, error)

	// DrawInRole returns an available card of the given role, preferring
	// the [tierLow, tierHigh] band before widening to the whole role set.
	DrawInRole(ctx context.Context, role domain.Role, tierLow, tierHigh int) (domain.Card, error)

	// DrawAny returns any available card from the whole catalog
	DrawAny(ctx context.Context) (domain.Card, error)
}

type service struct {
	idx     *catalog.Index
	ledger  ledger.Service
	weights map[int]int
	tiers   []int // descending, rarest first; fixed roll order
	total   int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a lottery over the given catalog and ledger using
// the default weight table.
func NewService(idx *catalog.Index, ledgerSvc ledger.Service) Service {
	return NewServiceWithWeights(idx, ledgerSvc, DefaultTierWeights, rand.Int63())
}

// NewServiceWithWeights creates a lottery with an explicit weight table and
// seed. Tests use this for reproducible rolls.
func NewServiceWithWeights(idx *catalog.Index, ledgerSvc ledger.Service, weights map[int]int, seed int64) Service {
	s := &service{
		idx:     idx,
		ledger:  ledgerSvc,
		weights: weights,
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // draw randomness, not security critical
	}

	for tier, w := range weights {
		if w <= 0 {
			continue
		}
		s.tiers = append(s.tiers, tier)
		s.total += w
	}
	sort.Sort(sort.Reverse(sort.IntSlice(s.tiers)))

	return s
}

// randIntn is the single synchronized access point to the rng; draws may
// run concurrently from request handlers and the poll loop.
func (s *service) randIntn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// DrawTier performs the cumulative-weight categorical roll: the result is
// the first tier, walking rarest to common, whose cumulative weight
// strictly exceeds the roll.
func (s *service) DrawTier() int {
	roll := s.randIntn(s.total)

	cum := 0
	for _, tier := range s.tiers {
		cum += s.weights[tier]
		if cum > roll {
			return tier
		}
	}
	// Unreachable while total equals the sum of weights
	return s.tiers[len(s.tiers)-1]
}

// DrawInTier draws from the requested tier, then walks the fallback chain:
// offsets alternate outward from the request, rarer side first on ties.
// The rarer-first order is deliberate and fixed so replays behave the same.
func (s *service) DrawInTier(ctx context.Context, tier int) (domain.Card, error) {
	card, err := s.drawFromSet(ctx, s.idx.ItemsInTier(tier))
	if err == nil {
		return card, nil
	}
	if !errors.Is(err, domain.ErrCatalogExhausted) {
		return domain.Card{}, err
	}

	for _, t := range fallbackOrder(tier) {
		metrics.LotteryFallbackScans.Inc()
		card, err := s.drawFromSet(ctx, s.idx.ItemsInTier(t))
		if err == nil {
			return card, nil
		}
		if !errors.Is(err, domain.ErrCatalogExhausted) {
			return domain.Card{}, err
		}
	}

	return domain.Card{}, domain.ErrCatalogExhausted
}

// fallbackOrder lists every other tier to try after the requested one:
// +1, -1, +2, -2, ... clamped to the valid tier range. Higher tier numbers
// are rarer, so the rarer neighbour is always tried first.
func fallbackOrder(tier int) []int {
	order := make([]int, 0, domain.MaxTier-domain.MinTier)
	for d := 1; d <= domain.MaxTier-domain.MinTier; d++ {
		if rarer := tier + d; rarer <= domain.MaxTier {
			order = append(order, rarer)
		}
		if commoner := tier - d; commoner >= domain.MinTier {
			order = append(order, commoner)
		}
	}
	return order
}

// DrawInRole restricts the draw to one roster role. The tier band keeps
// starter packs from being degenerate (all tier 1) or too generous.
func (s *service) DrawInRole(ctx context.Context, role domain.Role, tierLow, tierHigh int) (domain.Card, error) {
	roleCards := s.idx.ItemsInRole(role)

	var banded []domain.Card
	for _, c := range roleCards {
		if c.Tier >= tierLow && c.Tier <= tierHigh {
			banded = append(banded, c)
		}
	}

	card, err := s.drawFromSet(ctx, banded)
	if err == nil {
		return card, nil
	}
	if !errors.Is(err, domain.ErrCatalogExhausted) {
		return domain.Card{}, err
	}

	metrics.LotteryFallbackScans.Inc()
	return s.drawFromSet(ctx, roleCards)
}

// DrawAny draws from the entire catalog, walking tiers common to rare so
// backfill slots burn common inventory before rare.
func (s *service) DrawAny(ctx context.Context) (domain.Card, error) {
	for tier := domain.MinTier; tier <= domain.MaxTier; tier++ {
		card, err := s.drawFromSet(ctx, s.idx.ItemsInTier(tier))
		if err == nil {
			return card, nil
		}
		if !errors.Is(err, domain.ErrCatalogExhausted) {
			return domain.Card{}, err
		}
	}
	return domain.Card{}, domain.ErrCatalogExhausted
}

// drawFromSet picks an available card from the candidate set: up to
// MaxDrawAttempts uniform probes, then a full scan from a random offset so
// collisions under heavy issuance still terminate deterministically.
func (s *service) drawFromSet(ctx context.Context, cards []domain.Card) (domain.Card, error) {
	if len(cards) == 0 {
		return domain.Card{}, domain.ErrCatalogExhausted
	}

	for attempt := 0; attempt < MaxDrawAttempts; attempt++ {
		candidate := cards[s.randIntn(len(cards))]
		issued, err := s.ledger.IsIssued(ctx, candidate.Key())
		if err != nil {
			return domain.Card{}, fmt.Errorf("%s: %w", ErrContextAvailabilityCheck, err)
		}
		if !issued {
			return candidate, nil
		}
	}

	start := s.randIntn(len(cards))
	for i := 0; i < len(cards); i++ {
		candidate := cards[(start+i)%len(cards)]
		issued, err := s.ledger.IsIssued(ctx, candidate.Key())
		if err != nil {
			return domain.Card{}, fmt.Errorf("%s: %w", ErrContextAvailabilityCheck, err)
		}
		if !issued {
			return candidate, nil
		}
	}

	return domain.Card{}, domain.ErrCatalogExhausted
}
