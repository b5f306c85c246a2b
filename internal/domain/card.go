package domain

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Role is a roster position a card can occupy
type Role string

// The eleven roster roles. Starter packs guarantee coverage of all of them.
const (
	RoleGoalkeeper    Role = "GK"
	RoleRightBack     Role = "RB"
	RoleCentreBackR   Role = "CBR"
	RoleCentreBackL   Role = "CBL"
	RoleLeftBack      Role = "LB"
	RoleDefensiveMid  Role = "CDM"
	RoleCentreMidR    Role = "CMR"
	RoleCentreMidL    Role = "CML"
	RoleRightWing     Role = "RW"
	RoleStriker       Role = "ST"
	RoleLeftWing      Role = "LW"

	// RoleRandom marks a pack slot with no role constraint
	RoleRandom Role = "random"
)

// AllRoles lists every real roster role (excludes RoleRandom)
var AllRoles = []Role{
	RoleGoalkeeper, RoleRightBack, RoleCentreBackR, RoleCentreBackL, RoleLeftBack,
	RoleDefensiveMid, RoleCentreMidR, RoleCentreMidL, RoleRightWing, RoleStriker, RoleLeftWing,
}

// Tier bounds for card rarity. Tier 1 is common, MaxTier is rarest.
const (
	MinTier = 1
	MaxTier = 11
)

// StatBlock holds per-game performance numbers. Downstream roster/game
// consumers read these; the distribution core never interprets them.
type StatBlock struct {
	Pace      int `json:"pace"`
	Shooting  int `json:"shooting"`
	Passing   int `json:"passing"`
	Defending int `json:"defending"`
	Stamina   int `json:"stamina"`
}

// CardKey is the canonical identity of a catalog card: normalized
// (name, season). Two cards with the same key are the same card.
type CardKey struct {
	Name   string `json:"name"`
	Season int    `json:"season"`
}

// NewCardKey builds a normalized key from raw name and season.
// Normalization is case folding plus whitespace trimming, so
// " Okafor " in season 2001 and "OKAFOR" in season 2001 collide.
// Casers carry internal state and are not safe for concurrent use,
// so each call folds with its own.
func NewCardKey(name string, season int) CardKey {
	return CardKey{
		Name:   cases.Fold().String(strings.TrimSpace(name)),
		Season: season,
	}
}

// String renders the key in its storage form, e.g. "okafor#2001"
func (k CardKey) String() string {
	return fmt.Sprintf("%s#%d", k.Name, k.Season)
}

// ParseCardKey parses a stored identity back into its key. The season is
// everything after the last '#' so folded names may contain the separator.
func ParseCardKey(identity string) (CardKey, error) {
	sep := strings.LastIndex(identity, "#")
	if sep <= 0 || sep == len(identity)-1 {
		return CardKey{}, fmt.Errorf("%w: malformed card identity %q", ErrInvalidInput, identity)
	}
	season, err := strconv.Atoi(identity[sep+1:])
	if err != nil {
		return CardKey{}, fmt.Errorf("%w: malformed card identity %q", ErrInvalidInput, identity)
	}
	return NewCardKey(identity[:sep], season), nil
}

// Card is an immutable catalog entry. The catalog is loaded once at
// startup and never mutated by issuance.
type Card struct {
	Name   string    `json:"name"`
	Season int       `json:"season"`
	Tier   int       `json:"tier"`
	Role   Role      `json:"role"`
	Team   string    `json:"team"`
	Stats  StatBlock `json:"stats"`
}

// Key returns the card's normalized identity
func (c Card) Key() CardKey {
	return NewCardKey(c.Name, c.Season)
}
