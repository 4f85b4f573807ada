// Package title maps a route score to the rank awarded to the player.
package title

import (
	"math"

	"github.com/etops-strategy/engine/internal/scoring"
	"github.com/etops-strategy/engine/pkg/core"
)

// ranks are ordered by descending lower bound; the first match wins,
// so a boundary score belongs to the higher tier.
var ranks = []core.TitleResult{
	{
		Tier:         core.TierLegend,
		Badge:        "trophy",
		MessageClass: core.MessageSuccess,
		Message:      "Outstanding plan: safe, efficient and sustainable.",
		Band:         core.Band{Min: 90, Max: 100},
	},
	{
		Tier:         core.TierExpert,
		Badge:        "gold",
		MessageClass: core.MessageSuccess,
		Message:      "Strong plan with room for small improvements.",
		Band:         core.Band{Min: 80, Max: 89},
	},
	{
		Tier:         core.TierIntermediate,
		Badge:        "silver",
		MessageClass: core.MessageWarning,
		Message:      "Solid basics; review emissions and seat utilization.",
		Band:         core.Band{Min: 70, Max: 79},
	},
	{
		Tier:         core.TierBeginner,
		Badge:        "bronze",
		MessageClass: core.MessageWarning,
		Message:      "The plan works but several metrics need attention.",
		Band:         core.Band{Min: 60, Max: 69},
	},
	{
		Tier:         core.TierNeedsImprovement,
		Badge:        "book",
		MessageClass: core.MessageError,
		Message:      "Rethink the aircraft choice and passenger load.",
		Band:         core.Band{Min: 0, Max: 59},
	},
}

func init() {
	for i := range ranks {
		ranks[i].Label = ranks[i].Tier.String()
	}
}

// Classify returns the title for a base score in [0,100].
func Classify(total int) (core.TitleResult, error) {
	if total < 0 || total > scoring.MaxTotal {
		return core.TitleResult{}, core.NewInvalidInput("score", "must be within 0..%d, got %d", scoring.MaxTotal, total)
	}
	for _, r := range ranks {
		if total >= r.Band.Min {
			return r, nil
		}
	}
	return ranks[len(ranks)-1], nil
}

// ClassifyChallenge returns the title for a challenge score, scaled from
// 0..MaxChallengeTotal onto the base bands.
func ClassifyChallenge(total int) (core.TitleResult, error) {
	if total < 0 || total > scoring.MaxChallengeTotal {
		return core.TitleResult{}, core.NewInvalidInput("challenge score", "must be within 0..%d, got %d", scoring.MaxChallengeTotal, total)
	}
	pct := int(math.Round(float64(total) / scoring.MaxChallengeTotal * scoring.MaxTotal))
	return Classify(pct)
}
