package lottery

// DefaultTierWeights is the production weight table for the tier roll.
// Total weight 100, so each weight reads directly as a percentage.
var DefaultTierWeights = map[int]int{
	10: 1,
	9:  3,
	8:  7,
	7:  12,
	6:  18,
	5:  22,
	4:  20,
	3:  10,
	2:  5,
	1:  2,
}

const (
	// MaxDrawAttempts bounds the random probes inside one tier before
	// falling back to a linear availability scan
	MaxDrawAttempts = 100
)

// Error context strings
const (
	ErrContextAvailabilityCheck = "failed to check card availability"
)
