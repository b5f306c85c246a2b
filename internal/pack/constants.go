package pack

import "github.com/vantol/PackForge_Go/internal/domain"

// Starter tier band: role-constrained starter draws stay inside these
// tiers before widening, keeping starter packs useful but not generous.
const (
	StarterTierLow  = 4
	StarterTierHigh = 7
)

// MaxIssueRetries bounds redraws after losing an issue race. Collisions
// are expected under concurrency; an attacker-free system converges fast.
const MaxIssueRetries = 25

// StarterRoles maps starter pack number to its required role slots.
// Across packs 0..2 every roster role appears exactly once; RoleRandom
// slots fall through to the plain tier lottery.
var StarterRoles = map[int][]domain.Role{
	0: {
		domain.RoleGoalkeeper,
		domain.RoleCentreBackR,
		domain.RoleCentreMidR,
		domain.RoleRightWing,
		domain.RoleStriker,
	},
	1: {
		domain.RoleRightBack,
		domain.RoleCentreBackL,
		domain.RoleLeftBack,
		domain.RoleDefensiveMid,
		domain.RoleCentreMidL,
	},
	2: {
		domain.RoleLeftWing,
		domain.RoleRandom,
		domain.RoleRandom,
		domain.RoleRandom,
		domain.RoleRandom,
	},
}

// Error context strings
const (
	ErrContextDrawFailed  = "draw failed"
	ErrContextIssueFailed = "issue failed"
)

// Error messages
const (
	ErrMsgInvalidStarterIndex = "starter pack index out of range"
)

// Log messages
const (
	LogMsgPackAssembled  = "Pack assembled"
	LogMsgSlotUnfillable = "Pack slot unfillable, catalog exhausted"
)
