// Package risk maps numeric scam-risk scores onto the three user-facing
// tiers. Classification is deliberately local and deterministic: the scoring
// service's label is never trusted for thresholds, only re-derived from the
// numeric score.
package risk

// Tier is one of the three ordered risk tiers.
type Tier int

const (
	TierSafe Tier = iota
	TierSuspicious
	TierDangerous
)

func (t Tier) String() string {
	switch t {
	case TierSafe:
		return "safe"
	case TierSuspicious:
		return "suspicious"
	case TierDangerous:
		return "dangerous"
	default:
		return "unknown"
	}
}

// Accent is the display accent for a tier.
type Accent struct {
	Color string
	Icon  string
}

var accents = map[Tier]Accent{
	TierSafe:       {Color: "green", Icon: "🟢"},
	TierSuspicious: {Color: "yellow", Icon: "🟡"},
	TierDangerous:  {Color: "red", Icon: "🔴"},
}

// Clamp normalizes a score into [0,100]. The scoring service is not fully
// trusted, so out-of-range values are pinned to the nearest bound.
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Classify maps a score onto a tier. Boundaries are inclusive on the upper
// bound: 30 is still Safe, 70 is still Suspicious.
func Classify(score int) Tier {
	score = Clamp(score)
	switch {
	case score <= 30:
		return TierSafe
	case score <= 70:
		return TierSuspicious
	default:
		return TierDangerous
	}
}

// AccentFor returns the display accent for a tier. Total over the three
// tiers; unknown values fall back to the dangerous accent rather than
// underselling risk.
func AccentFor(t Tier) Accent {
	if a, ok := accents[t]; ok {
		return a
	}
	return accents[TierDangerous]
}
