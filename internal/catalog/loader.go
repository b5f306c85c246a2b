package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/vantol/PackForge_Go/internal/domain"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateCard = errors.New("duplicate card identity")
	ErrInvalidConfig = errors.New("invalid catalog configuration")
)

// Config represents the JSON catalog file
type Config struct {
	Version     string        `json:"version"`
	Description string        `json:"description"`
	Cards       []domain.Card `json:"cards"`
}

// Loader handles loading and validating the card catalog
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
}

type catalogLoader struct{}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &catalogLoader{}
}

// Load reads and parses a catalog JSON file
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	return &config, nil
}

// Validate checks the catalog configuration for errors. A failure here
// must abort startup: a corrupt catalog would otherwise degrade silently
// into wrong scarcity guarantees.
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	if len(config.Cards) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoCardsDefined)
	}

	validRoles := make(map[domain.Role]bool, len(domain.AllRoles))
	for _, r := range domain.AllRoles {
		validRoles[r] = true
	}

	seen := make(map[domain.CardKey]bool, len(config.Cards))
	for i := range config.Cards {
		card := &config.Cards[i]

		if err := l.validateCard(i, card, validRoles, seen); err != nil {
			return err
		}
	}

	return nil
}

func (l *catalogLoader) validateCard(index int, card *domain.Card, validRoles map[domain.Role]bool, seen map[domain.CardKey]bool) error {
	if card.Name == "" {
		return fmt.Errorf(ErrFmtCardAtIndexEmpty, ErrInvalidConfig, index)
	}
	if card.Season <= 0 {
		return fmt.Errorf(ErrFmtCardInvalidSeason, ErrInvalidConfig, card.Name, card.Season)
	}
	if card.Tier < domain.MinTier || card.Tier > domain.MaxTier {
		return fmt.Errorf(ErrFmtCardInvalidTier, ErrInvalidConfig, card.Name, card.Tier)
	}
	if !validRoles[card.Role] {
		return fmt.Errorf(ErrFmtCardInvalidRole, ErrInvalidConfig, card.Name, card.Role)
	}

	key := card.Key()
	if seen[key] {
		return fmt.Errorf("%w: %s", ErrDuplicateCard, key)
	}
	seen[key] = true

	return nil
}
