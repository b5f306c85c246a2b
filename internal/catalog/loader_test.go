package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantol/PackForge_Go/internal/domain"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads well-formed catalog", func(t *testing.T) {
		path := writeCatalogFile(t, `{
			"version": "1.0",
			"cards": [
				{"name": "Okafor", "season": 2001, "tier": 5, "role": "ST", "team": "Rovers"},
				{"name": "Lindqvist", "season": 2001, "tier": 8, "role": "GK", "team": "United"}
			]
		}`)

		config, err := NewLoader().Load(path)

		require.NoError(t, err)
		assert.Len(t, config.Cards, 2)
		assert.Equal(t, domain.RoleStriker, config.Cards[0].Role)
	})

	t.Run("fails on missing file", func(t *testing.T) {
		_, err := NewLoader().Load("/nonexistent/cards.json")
		assert.Error(t, err)
	})

	t.Run("fails on malformed JSON", func(t *testing.T) {
		path := writeCatalogFile(t, `{"cards": [`)
		_, err := NewLoader().Load(path)
		assert.Error(t, err)
	})
}

func TestLoaderValidate(t *testing.T) {
	loader := NewLoader()

	valid := func() *Config {
		return &Config{Cards: []domain.Card{
			{Name: "Okafor", Season: 2001, Tier: 5, Role: domain.RoleStriker},
		}}
	}

	t.Run("accepts valid config", func(t *testing.T) {
		assert.NoError(t, loader.Validate(valid()))
	})

	t.Run("rejects nil config", func(t *testing.T) {
		assert.ErrorIs(t, loader.Validate(nil), ErrInvalidConfig)
	})

	t.Run("rejects empty catalog", func(t *testing.T) {
		assert.ErrorIs(t, loader.Validate(&Config{}), ErrInvalidConfig)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		cfg := valid()
		cfg.Cards[0].Name = ""
		assert.ErrorIs(t, loader.Validate(cfg), ErrInvalidConfig)
	})

	t.Run("rejects tier outside range", func(t *testing.T) {
		cfg := valid()
		cfg.Cards[0].Tier = 12
		assert.ErrorIs(t, loader.Validate(cfg), ErrInvalidConfig)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		cfg := valid()
		cfg.Cards[0].Role = "SWEEPER"
		assert.ErrorIs(t, loader.Validate(cfg), ErrInvalidConfig)
	})

	t.Run("rejects duplicate identity after normalization", func(t *testing.T) {
		cfg := valid()
		cfg.Cards = append(cfg.Cards, domain.Card{
			Name: "  OKAFOR ", Season: 2001, Tier: 3, Role: domain.RoleLeftWing,
		})

		assert.ErrorIs(t, loader.Validate(cfg), ErrDuplicateCard)
	})

	t.Run("same name in another season is distinct", func(t *testing.T) {
		cfg := valid()
		cfg.Cards = append(cfg.Cards, domain.Card{
			Name: "Okafor", Season: 2002, Tier: 3, Role: domain.RoleLeftWing,
		})

		assert.NoError(t, loader.Validate(cfg))
	})
}
