// Package scoring turns route metrics into the 0-100 route score.
package scoring

import (
	"math"

	"github.com/etops-strategy/engine/pkg/core"
)

const (
	// MaxSubScore bounds each of the four sub-scores.
	MaxSubScore = 25
	// MaxTotal is the best achievable base score.
	MaxTotal = 4 * MaxSubScore
	// MaxDistanceBonus bounds the challenge distance bonus.
	MaxDistanceBonus = 5
	// MaxChallengeTotal is the best achievable challenge score.
	MaxChallengeTotal = MaxTotal + MaxDistanceBonus
)

type threshold struct {
	limit float64
	score int
}

// CO2 per passenger in kg, at or below limit
var environmentalBands = []threshold{
	{50, 25},
	{100, 20},
	{150, 15},
	{200, 10},
}

// seat utilization ratio, at or above limit
var efficiencyBands = []threshold{
	{0.9, 25},
	{0.8, 20},
	{0.7, 15},
	{0.6, 10},
}

// route distance in km, at or above limit; only awarded to ETOPS compliant routes
var distanceBonusBands = []threshold{
	{8000, 5},
	{6000, 4},
	{4000, 3},
	{2000, 2},
	{1000, 1},
}

const floorSubScore = 5

// Score computes the base route score. Inputs outside their domain are
// rejected rather than clamped.
func Score(etopsCompliant bool, co2PerPassenger, utilization, sdgScore float64) (core.ScoreResult, error) {
	if math.IsNaN(co2PerPassenger) || co2PerPassenger < 0 {
		return core.ScoreResult{}, core.NewInvalidInput("co2 per passenger", "must be non-negative, got %v", co2PerPassenger)
	}
	if math.IsNaN(utilization) || utilization < 0 || utilization > 1 {
		return core.ScoreResult{}, core.NewInvalidInput("capacity utilization", "must be within [0,1], got %v", utilization)
	}
	if math.IsNaN(sdgScore) || sdgScore < 0 || sdgScore > 10 {
		return core.ScoreResult{}, core.NewInvalidInput("sdg score", "must be within [0,10], got %v", sdgScore)
	}

	res := core.ScoreResult{
		Environmental: EnvironmentalScore(co2PerPassenger),
		Efficiency:    EfficiencyScore(utilization),
		Aircraft:      sdgScore / 10 * MaxSubScore,
	}
	if etopsCompliant {
		res.ETOPS = MaxSubScore
	}
	res.AircraftDisplay = int(math.Round(res.Aircraft))
	sum := float64(res.ETOPS+res.Environmental+res.Efficiency) + res.Aircraft
	res.Total = int(math.Round(sum))
	return res, nil
}

// EnvironmentalScore maps CO2 per passenger to its sub-score.
func EnvironmentalScore(co2PerPassenger float64) int {
	for _, b := range environmentalBands {
		if co2PerPassenger <= b.limit {
			return b.score
		}
	}
	return floorSubScore
}

// EfficiencyScore maps a seat utilization ratio to its sub-score.
func EfficiencyScore(utilization float64) int {
	for _, b := range efficiencyBands {
		if utilization >= b.limit {
			return b.score
		}
	}
	return floorSubScore
}

// DistanceBonus returns the challenge bonus for flying distanceKm.
func DistanceBonus(etopsCompliant bool, distanceKm float64) int {
	if !etopsCompliant {
		return 0
	}
	for _, b := range distanceBonusBands {
		if distanceKm >= b.limit {
			return b.score
		}
	}
	return 0
}

// Detailed layers the distance bonus on a base score for challenge play.
func Detailed(base core.ScoreResult, distanceKm float64) (core.DetailedScore, error) {
	if math.IsNaN(distanceKm) || distanceKm < 0 {
		return core.DetailedScore{}, core.NewInvalidInput("distance", "must be non-negative, got %v", distanceKm)
	}
	bonus := DistanceBonus(base.ETOPS == MaxSubScore, distanceKm)
	return core.DetailedScore{
		Base:           base,
		DistanceBonus:  bonus,
		ChallengeTotal: base.Total + bonus,
	}, nil
}
