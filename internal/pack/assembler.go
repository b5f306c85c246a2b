package pack

import (
	"context"
	"errors"
	"fmt"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/ledger"
	"github.com/vantol/PackForge_Go/internal/logger"
	"github.com/vantol/PackForge_Go/internal/lottery"
	"github.com/vantol/PackForge_Go/internal/metrics"
)

// Assembler composes packs from lottery draws and commits each selected
// card into the uniqueness ledger. Issuance happens per slot, as the slot
// is selected, so a pack can never contain a card the ledger refused.
type Assembler interface {
	// OpenStarter assembles starter pack number index (0..StarterPackCount-1)
	// for ownerID. Required roles draw from the starter tier band first.
	OpenStarter(ctx context.Context, ownerID string, index int) (*domain.OpenedPack, error)

	// OpenBonus assembles a pure-lottery pack for ownerID
	OpenBonus(ctx context.Context, ownerID string) (*domain.OpenedPack, error)
}

type assembler struct {
	lottery lottery.Service
	ledger  ledger.Service
}

// NewAssembler creates a pack assembler
func NewAssembler(lotterySvc lottery.Service, ledgerSvc ledger.Service) Assembler {
	return &assembler{lottery: lotterySvc, ledger: ledgerSvc}
}

// OpenStarter builds a role-guaranteed pack. Slots that cannot be filled
// from their role are backfilled with any-available draws; a fully
// exhausted catalog yields a short pack with the shortfall flag set.
func (a *assembler) OpenStarter(ctx context.Context, ownerID string, index int) (*domain.OpenedPack, error) {
	roles, ok := StarterRoles[index]
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", domain.ErrInvalidInput, ErrMsgInvalidStarterIndex, index)
	}

	pack := &domain.OpenedPack{}
	for _, role := range roles {
		var card domain.Card
		var err error
		if role == domain.RoleRandom {
			card, err = a.drawAndIssueTier(ctx, ownerID)
		} else {
			card, err = a.drawAndIssueRole(ctx, ownerID, role)
		}
		if err != nil {
			if errors.Is(err, domain.ErrCatalogExhausted) {
				continue // backfill pass handles it
			}
			return nil, err
		}
		pack.Cards = append(pack.Cards, card)
	}

	return a.backfill(ctx, ownerID, pack, len(roles))
}

// OpenBonus builds a pack where every slot is a plain weighted tier draw
func (a *assembler) OpenBonus(ctx context.Context, ownerID string) (*domain.OpenedPack, error) {
	pack := &domain.OpenedPack{}
	for i := 0; i < domain.PackSize; i++ {
		card, err := a.drawAndIssueTier(ctx, ownerID)
		if err != nil {
			if errors.Is(err, domain.ErrCatalogExhausted) {
				continue
			}
			return nil, err
		}
		pack.Cards = append(pack.Cards, card)
	}

	return a.backfill(ctx, ownerID, pack, domain.PackSize)
}

// backfill tops a partially filled pack up to want cards with
// any-available draws, then flags shortfall if the catalog ran dry.
func (a *assembler) backfill(ctx context.Context, ownerID string, pack *domain.OpenedPack, want int) (*domain.OpenedPack, error) {
	log := logger.FromContext(ctx)

	for len(pack.Cards) < want {
		card, err := a.drawAndIssue(ctx, ownerID, func(ctx context.Context) (domain.Card, error) {
			return a.lottery.DrawAny(ctx)
		})
		if err != nil {
			if errors.Is(err, domain.ErrCatalogExhausted) {
				log.Warn(LogMsgSlotUnfillable, "owner", ownerID, "filled", len(pack.Cards), "want", want)
				pack.Shortfall = true
				break
			}
			return nil, err
		}
		pack.Cards = append(pack.Cards, card)
	}

	log.Info(LogMsgPackAssembled, "owner", ownerID, "cards", len(pack.Cards), "shortfall", pack.Shortfall)
	return pack, nil
}

func (a *assembler) drawAndIssueTier(ctx context.Context, ownerID string) (domain.Card, error) {
	return a.drawAndIssue(ctx, ownerID, func(ctx context.Context) (domain.Card, error) {
		return a.lottery.DrawInTier(ctx, a.lottery.DrawTier())
	})
}

func (a *assembler) drawAndIssueRole(ctx context.Context, ownerID string, role domain.Role) (domain.Card, error) {
	return a.drawAndIssue(ctx, ownerID, func(ctx context.Context) (domain.Card, error) {
		return a.lottery.DrawInRole(ctx, role, StarterTierLow, StarterTierHigh)
	})
}

// drawAndIssue runs one draw/issue cycle, redrawing when a concurrent
// caller wins the same card first. ErrAlreadyIssued here is routine, not
// a failure.
func (a *assembler) drawAndIssue(ctx context.Context, ownerID string, draw func(context.Context) (domain.Card, error)) (domain.Card, error) {
	for attempt := 0; attempt < MaxIssueRetries; attempt++ {
		card, err := draw(ctx)
		if err != nil {
			return domain.Card{}, err
		}

		err = a.ledger.Issue(ctx, card.Key(), ownerID, card.Tier)
		if err == nil {
			return card, nil
		}
		if errors.Is(err, domain.ErrAlreadyIssued) {
			continue
		}
		return domain.Card{}, fmt.Errorf("%s: %w", ErrContextIssueFailed, err)
	}

	// Every redraw lost its race; under real contention the catalog is
	// effectively drained for this caller.
	return domain.Card{}, domain.ErrCatalogExhausted
}

// RecordOpenMetrics bumps the pack counters for one assembled pack
func RecordOpenMetrics(shape domain.PackShape, source string) {
	metrics.PacksOpened.WithLabelValues(string(shape), source).Inc()
}
