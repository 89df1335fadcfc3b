package types

// Tier is the severity bucket of a risk on the probability/impact matrix
type Tier string

const (
	TierLow    Tier = "LOW"
	TierMedium Tier = "MEDIUM"
	TierHigh   Tier = "HIGH"
)

// AllTiers returns tiers in ascending severity
func AllTiers() []Tier {
	return []Tier{TierLow, TierMedium, TierHigh}
}

// TierOf derives the tier from probability and impact scores.
// Both scores must clear a threshold, so (1,3) is LOW rather than max(1,3).
func TierOf(probabilityScore, impactScore int) Tier {
	switch {
	case probabilityScore >= 3 && impactScore >= 3:
		return TierHigh
	case probabilityScore >= 2 && impactScore >= 2:
		return TierMedium
	default:
		return TierLow
	}
}

// Rank orders tiers by severity (LOW=1 .. HIGH=3). Unknown tiers rank 0.
func (t Tier) Rank() int {
	switch t {
	case TierLow:
		return 1
	case TierMedium:
		return 2
	case TierHigh:
		return 3
	default:
		return 0
	}
}

func (t Tier) String() string {
	return string(t)
}
