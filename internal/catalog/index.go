package catalog

import (
	"fmt"

	"github.com/vantol/PackForge_Go/internal/domain"
)

// Index holds the loaded catalog with lookup structures by tier and role.
// It is built once at startup, injected into consumers, and never mutated
// afterward, so it is safe for unlimited concurrent readers without locking.
type Index struct {
	cards  []domain.Card
	byKey  map[domain.CardKey]domain.Card
	byTier map[int][]domain.Card
	byRole map[domain.Role][]domain.Card
}

// NewIndex builds an Index from a validated catalog config
func NewIndex(config *Config) (*Index, error) {
	if config == nil || len(config.Cards) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoCardsDefined)
	}

	idx := &Index{
		cards:  make([]domain.Card, len(config.Cards)),
		byKey:  make(map[domain.CardKey]domain.Card, len(config.Cards)),
		byTier: make(map[int][]domain.Card),
		byRole: make(map[domain.Role][]domain.Card),
	}
	copy(idx.cards, config.Cards)

	for _, card := range idx.cards {
		key := card.Key()
		if _, dup := idx.byKey[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, key)
		}
		idx.byKey[key] = card
		idx.byTier[card.Tier] = append(idx.byTier[card.Tier], card)
		idx.byRole[card.Role] = append(idx.byRole[card.Role], card)
	}

	return idx, nil
}

// LoadIndex loads, validates and indexes the catalog at path in one step
func LoadIndex(path string) (*Index, error) {
	loader := NewLoader()

	config, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	if err := loader.Validate(config); err != nil {
		return nil, err
	}

	return NewIndex(config)
}

// ItemsInTier returns the cards of the given rarity tier. The returned
// slice is shared; callers must not modify it.
func (idx *Index) ItemsInTier(tier int) []domain.Card {
	return idx.byTier[tier]
}

// ItemsInRole returns the cards of the given roster role
func (idx *Index) ItemsInRole(role domain.Role) []domain.Card {
	return idx.byRole[role]
}

// Lookup returns the card for a normalized identity, if present
func (idx *Index) Lookup(key domain.CardKey) (domain.Card, bool) {
	card, ok := idx.byKey[key]
	return card, ok
}

// Size returns the total number of catalog cards
func (idx *Index) Size() int {
	return len(idx.cards)
}
